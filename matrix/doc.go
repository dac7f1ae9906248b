// Package matrix provides the dense row-major float64 storage that backs the
// region × cell-type frequency tables and the spot × cell-type composition
// tables produced by the generator.
//
// The package provides:
//
//   - Dense: an r×c row-major matrix with bounds-checked At/Set that return
//     sentinel errors instead of panicking.
//   - Row reductions used by the composition tables (RowSums, NormalizeRowsL1).
//   - AllClose for tolerance-based comparisons in tests and invariant checks.
//
// Zero rows and zero columns are legal shapes: a dataset with no spots still
// owns a 0×K composition table.
package matrix
