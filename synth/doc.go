// Package synth assembles synthetic spatial-transcriptomics datasets from a
// single-cell reference catalog.
//
// Generate runs the whole pipeline for one dataset type:
//
//	composition.Compute   region × cell-type frequency table
//	spot.Compose          per-region spot count and per-spot cell-type counts
//	sampler.Sample        concrete reference cells per spot
//	aggregate.Aggregate   summed expression per spot
//
// and then derives the composition tables, the gold-standard prior-region
// table and a flat properties summary. An optional mock region
// ("priorregion_mock") is built uniformly over all admitted cell types and has
// its gene axis shuffled spot by spot.
//
// Determinism: every random draw derives from one master seed. Spots are
// realized on independent sub-streams keyed by their ordinal, so the output
// does not depend on WithWorkers.
//
// Errors are the sentinels ErrConfiguration, ErrInsufficientData and
// ErrInsufficientCells (shared with the lower packages) wrapped with context.
package synth
