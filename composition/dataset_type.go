// SPDX-License-Identifier: MIT
// Package: spotsynth/composition
//
// dataset_type.go — the closed set of dataset types and their policies.

package composition

import (
	"fmt"
	"strings"
)

// Family groups dataset types by where their regions come from.
type Family int

const (
	// FamilyReal types use the catalog's region labels.
	FamilyReal Family = iota
	// FamilyArtificial types synthesize region_1..region_n.
	FamilyArtificial
)

// String returns "real" or "artificial".
func (f Family) String() string {
	if f == FamilyReal {
		return "real"
	}

	return "artificial"
}

// DatasetType names one generation policy.
type DatasetType int

const (
	Real DatasetType = iota
	RealTop1
	RealTop1Uniform
	RealTop2Overlap
	RealTop2OverlapUniform
	RealMissingCelltypesVisium
	ArtificialUniformDistinct
	ArtificialDiverseDistinct
	ArtificialUniformOverlap
	ArtificialDiverseOverlap
	ArtificialDominantCelltypeDiverse
	ArtificialPartiallyDominantCelltypeDiverse
	ArtificialMissingCelltypesVisium
	ArtificialDominantRareCelltypeDiverse
	ArtificialRegionalRareCelltypeDiverse
	ArtificialDiverseDistinctMissingCelltypeSC
	ArtificialDiverseOverlapMissingCelltypeSC

	numDatasetTypes
)

// variant binds a dataset type to its canonical name and policy.
type variant struct {
	name   string
	family Family
	policy policy
}

// variants is indexed by DatasetType; its length is fixed by numDatasetTypes.
var variants = [numDatasetTypes]variant{
	Real:                       {"real", FamilyReal, realPolicy{admit: admitAll}},
	RealTop1:                   {"real_top1", FamilyReal, realPolicy{admit: admitTop1}},
	RealTop1Uniform:            {"real_top1_uniform", FamilyReal, realPolicy{admit: admitTop1, uniform: true}},
	RealTop2Overlap:            {"real_top2_overlap", FamilyReal, realPolicy{admit: admitTop2}},
	RealTop2OverlapUniform:     {"real_top2_overlap_uniform", FamilyReal, realPolicy{admit: admitTop2, uniform: true}},
	RealMissingCelltypesVisium: {"real_missing_celltypes_visium", FamilyReal, realPolicy{admit: admitAll, removeTypes: true}},

	ArtificialUniformDistinct: {"artificial_uniform_distinct", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsUniform}},
	ArtificialDiverseDistinct: {"artificial_diverse_distinct", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse}},
	ArtificialUniformOverlap: {"artificial_uniform_overlap", FamilyArtificial,
		artificialPolicy{layout: layoutOverlap, weights: weightsUniform}},
	ArtificialDiverseOverlap: {"artificial_diverse_overlap", FamilyArtificial,
		artificialPolicy{layout: layoutOverlap, weights: weightsDiverse}},
	ArtificialDominantCelltypeDiverse: {"artificial_dominant_celltype_diverse", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse, perturb: perturbDominant}},
	ArtificialPartiallyDominantCelltypeDiverse: {"artificial_partially_dominant_celltype_diverse", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse, perturb: perturbPartiallyDominant}},
	ArtificialMissingCelltypesVisium: {"artificial_missing_celltypes_visium", FamilyArtificial,
		artificialPolicy{layout: layoutOverlap, weights: weightsDiverse, removeTypes: true}},
	ArtificialDominantRareCelltypeDiverse: {"artificial_dominant_rare_celltype_diverse", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse, perturb: perturbDominantRare}},
	ArtificialRegionalRareCelltypeDiverse: {"artificial_regional_rare_celltype_diverse", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse, perturb: perturbRegionalRare}},
	ArtificialDiverseDistinctMissingCelltypeSC: {"artificial_diverse_distinct_missing_celltype_sc", FamilyArtificial,
		artificialPolicy{layout: layoutDistinct, weights: weightsDiverse, holdOut: true}},
	ArtificialDiverseOverlapMissingCelltypeSC: {"artificial_diverse_overlap_missing_celltype_sc", FamilyArtificial,
		artificialPolicy{layout: layoutOverlap, weights: weightsDiverse, holdOut: true}},
}

// Valid reports whether dt is one of the seventeen dataset types.
func (dt DatasetType) Valid() bool { return dt >= 0 && dt < numDatasetTypes }

// String returns the canonical snake_case name.
func (dt DatasetType) String() string {
	if !dt.Valid() {
		return fmt.Sprintf("DatasetType(%d)", int(dt))
	}

	return variants[dt].name
}

// Family reports whether dt uses real or artificial regions.
func (dt DatasetType) Family() Family { return variants[dt].family }

// Uniform reports whether admitted cell types share equal frequency.
func (dt DatasetType) Uniform() bool {
	switch p := variants[dt].policy.(type) {
	case realPolicy:
		return p.uniform
	case artificialPolicy:
		return p.weights == weightsUniform && p.perturb == perturbNone
	}

	return false
}

// Distinct reports whether admitted cell-type sets are pairwise disjoint.
// The dominant variants share their dominant type across regions and are not
// distinct; the regional-rare type lives in a single region and keeps the
// layout disjoint.
func (dt DatasetType) Distinct() bool {
	p, ok := variants[dt].policy.(artificialPolicy)
	return ok && p.layout == layoutDistinct && (p.perturb == perturbNone || p.perturb == perturbRegionalRare)
}

// Overlap reports whether at least two regions are guaranteed to share a cell type.
func (dt DatasetType) Overlap() bool {
	p, ok := variants[dt].policy.(artificialPolicy)
	return ok && p.layout == layoutOverlap
}

// AllDatasetTypes lists every dataset type in declaration order.
func AllDatasetTypes() []DatasetType {
	out := make([]DatasetType, numDatasetTypes)
	for i := range out {
		out[i] = DatasetType(i)
	}

	return out
}

// ParseDatasetType resolves a canonical name (case-insensitive, surrounding
// space ignored).
func ParseDatasetType(name string) (DatasetType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i := range variants {
		if variants[i].name == key {
			return DatasetType(i), nil
		}
	}

	return 0, fmt.Errorf("ParseDatasetType(%q): %w", name, ErrUnknownDatasetType)
}
