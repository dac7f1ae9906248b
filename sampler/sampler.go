// SPDX-License-Identifier: MIT
// Package: spotsynth/sampler
//
// sampler.go — Sample.

package sampler

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/rng"
)

// Sample returns catalog cell indices realizing counts (cells per cell type,
// indexed like cat.CellTypes()). scope is a catalog region index or
// catalog.AnyRegion.
//
// The result lists cells grouped by cell type in type order; within a type the
// order is the draw order. No index repeats.
//
// Errors: ErrInsufficientCells naming the cell type, region, requested and
// available counts.
//
// Complexity: O(Σ counts · log n) plus one bitmap intersection per type when scoped.
func Sample(cat *catalog.Catalog, counts []int, scope int, r *rand.Rand) ([]int, error) {
	if r == nil {
		r = rng.FromSeed(0)
	}
	total := 0
	for _, n := range counts {
		if n > 0 {
			total += n
		}
	}
	out := make([]int, 0, total)
	for t, n := range counts {
		if n <= 0 {
			continue
		}
		pool := cat.Pool(t, scope)
		avail := int(pool.GetCardinality())
		if avail < n {
			return nil, fmt.Errorf("Sample: cell type %q in region %q: requested %d, available %d: %w",
				typeName(cat, t), regionName(cat, scope), n, avail, ErrInsufficientCells)
		}
		for _, rank := range floyd(avail, n, r) {
			idx, err := pool.Select(uint32(rank))
			if err != nil {
				return nil, fmt.Errorf("Sample: cell type %q rank %d: %v: %w", typeName(cat, t), rank, err, ErrInsufficientCells)
			}
			out = append(out, int(idx))
		}
	}

	return out, nil
}

// floyd draws k distinct integers from [0, n) (Floyd's algorithm), returned in
// insertion order.
func floyd(n, k int, r *rand.Rand) []int {
	picked := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		v := r.Intn(j + 1)
		if _, dup := picked[v]; dup {
			v = j
		}
		picked[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

func typeName(cat *catalog.Catalog, t int) string {
	if names := cat.CellTypes(); t >= 0 && t < len(names) {
		return names[t]
	}

	return fmt.Sprintf("#%d", t)
}

func regionName(cat *catalog.Catalog, r int) string {
	if r == catalog.AnyRegion {
		return "*"
	}
	if names := cat.Regions(); r >= 0 && r < len(names) {
		return names[r]
	}

	return fmt.Sprintf("#%d", r)
}
