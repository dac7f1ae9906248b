// Package aggregate sums sampled cells into spot expression vectors and
// assembles them into a genes × spots count matrix.
//
// It also provides the two count-level transforms used during assembly:
// ShuffleGenes (gene-label permutation of the mock region) and Downsample
// (optional thinning to a library-size target).
//
// All arithmetic is int64 and exact: the total of an aggregated vector equals
// the sum of the contributing cells' totals.
package aggregate
