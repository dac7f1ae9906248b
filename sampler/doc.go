// Package sampler draws concrete reference cells for a composed spot.
//
// For each cell type with a positive count the sampler picks that many
// distinct cells of the type, optionally restricted to one catalog region.
// Draws are without replacement inside a spot only; separate calls are
// independent, so a cell may appear in many spots.
//
// Candidate pools are roaring bitmaps owned by the catalog. Ranks are drawn
// with Floyd's algorithm and resolved through Bitmap.Select, so a draw costs
// O(k log n) regardless of pool size.
package sampler
