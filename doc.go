// Package spotsynth generates synthetic spatial-transcriptomics datasets
// from a single-cell reference: spots are mixtures of real cells whose
// cell-type frequencies follow one of seventeen region policies.
//
// What is spotsynth?
//
//	A deterministic, seedable generator that brings together:
//		• Reference catalogs: cells with type/region labels and gene counts
//		• Composition policies: real regions or artificial region_1..region_n
//		• Spot composition: per-spot cell counts by largest remainder
//		• Cell sampling and aggregation into a gene × spot count matrix
//		• A gold-standard frequency table and a flat property summary
//
// Packages:
//
//	catalog/     — indexed single-cell reference (roaring bitmap pools)
//	composition/ — the seventeen dataset types and their frequency tables
//	spot/        — cells-per-spot draws and per-type apportionment
//	sampler/     — cell sampling without replacement from type/region pools
//	aggregate/   — gene vector sums, shuffles, downsampling, count matrix
//	synth/       — Generate: options, orchestration, properties
//	matrix/      — small dense float matrix used for frequency tables
//	rng/         — seeded streams and the distributions above are built on
//
// The same seed and options always yield the same dataset, whatever the
// number of workers.
//
//	go install github.com/katalvlaran/spotsynth/cmd/spotsynth@latest
package spotsynth
