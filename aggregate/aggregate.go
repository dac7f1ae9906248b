// SPDX-License-Identifier: MIT
// Package: spotsynth/aggregate
//
// aggregate.go — per-spot summation and count-level transforms.

package aggregate

import (
	"math/rand"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/rng"
)

// Aggregate sums the expression vectors of cells (catalog indices). Repeated
// indices are counted as many times as they appear.
//
// Complexity: O(len(cells) · G).
func Aggregate(cat *catalog.Catalog, cells []int) []int64 {
	out := make([]int64, cat.NumGenes())
	for _, c := range cells {
		cat.AddCountsTo(out, c)
	}

	return out
}

// Total returns Σ vec.
func Total(vec []int64) int64 {
	var s int64
	for _, v := range vec {
		s += v
	}

	return s
}

// ShuffleGenes returns a copy of vec with its entries permuted uniformly at
// random. The multiset of values, and so the total, is unchanged.
func ShuffleGenes(vec []int64, r *rand.Rand) []int64 {
	perm := rng.Perm(len(vec), r)
	out := make([]int64, len(vec))
	for g, p := range perm {
		out[g] = vec[p]
	}

	return out
}

// Downsample thins vec to exactly target counts by drawing target of its
// Σvec molecules without replacement (multivariate hypergeometric). A target
// at or above the total returns an unchanged copy; target ≤ 0 returns zeros.
//
// Molecule ranks are drawn with Floyd's algorithm into a 64-bit roaring
// bitmap and then walked in ascending order against the cumulative gene
// counts, so libraries beyond 2^32 molecules are thinned without wrapping.
//
// Complexity: O(target · log target + G).
func Downsample(vec []int64, target int64, r *rand.Rand) []int64 {
	out := make([]int64, len(vec))
	total := Total(vec)
	if target >= total {
		copy(out, vec)
		return out
	}
	if target <= 0 {
		return out
	}
	if r == nil {
		r = rng.FromSeed(0)
	}

	ranks := roaring64.New()
	for j := total - target; j < total; j++ {
		if !ranks.CheckedAdd(uint64(r.Int63n(j + 1))) {
			ranks.Add(uint64(j))
		}
	}

	g, upper := 0, vec[0]
	it := ranks.Iterator()
	for it.HasNext() {
		rank := int64(it.Next())
		for rank >= upper {
			g++
			upper += vec[g]
		}
		out[g]++
	}

	return out
}
