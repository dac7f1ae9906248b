// Package composition computes the region × cell-type frequency table that
// drives spot generation, under one of seventeen named dataset types.
//
// Two families exist:
//
//	real_*        regions are the catalog's region labels; frequencies are
//	              derived from observed cell counts (or made uniform), with
//	              top-1 / top-2 admission rules and optional global removal
//	              of cell types.
//	artificial_*  regions are synthetic ("region_1".."region_n"); cell types
//	              are partitioned disjointly or with random overlap, weighted
//	              uniformly or from a random simplex, and optionally perturbed
//	              by a dominant or rare cell type.
//
// The dataset types form a closed set: DatasetType is an enum whose values
// map one-to-one onto unexported policy values held in an array indexed by
// the enum.
//
// Every stochastic choice draws from PolicyContext.Rand; the package holds no
// global random state.
package composition
