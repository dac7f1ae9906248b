// Package tsv reads reference cell tables and writes generated datasets as
// tab-separated files.
//
// Input layout (one row per cell):
//
//	cell_id  <label columns...>  <gene columns...>
//
// The label columns are named by the caller; every other column after the
// first is a gene holding a non-negative integer count.
//
// Output layout (one file per table, written into a directory):
//
//	counts.tsv                     gene × spot counts
//	spot_composition.tsv           name, region, cells per cell type
//	relative_spot_composition.tsv  name, region, proportions per cell type
//	gold_standard_priorregion.tsv  region × cell-type frequencies
//	dataset_properties.tsv         key, value
package tsv
