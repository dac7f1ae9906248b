// Package spot turns a region's cell-type frequency vector into concrete
// per-spot cell-type counts.
//
// For each spot a total cell count is drawn from a normal distribution
// truncated to positive integers, then split across cell types:
//
//	LargestRemainder  the region's cells (Σ totals) are apportioned by largest
//	                  remainder (ties → lower type index), then dealt out spot
//	                  by spot in proportion to what is left. Region sums stay
//	                  within one cell of the expected proportions.
//	Multinomial       every cell draws its type independently from f.
//
// Both modes preserve the total exactly. Spots are named "<region>_<k>",
// k starting at 1.
package spot
