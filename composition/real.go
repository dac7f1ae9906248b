// SPDX-License-Identifier: MIT
// Package: spotsynth/composition
//
// real.go — policies over the catalog's own region labels.
//
// Frequency of type t in region r is count(r,t) / Σ_admitted count(r,·).
// Admission rules:
//   - all:  every type observed in the region.
//   - top1: a type is admitted only to the region where its share of the
//           region's cells is highest (ties → first-encountered region).
//   - top2: a type is admitted to its two regions with the most cells of it.
//
// Regions left with nothing admitted are dropped and reported in
// Result.DroppedRegions.
//
// Complexity: O(R·K·log R) for top2, O(R·K) otherwise.

package composition

import (
	"sort"

	"github.com/katalvlaran/spotsynth/rng"
)

// admitRule selects which (region, type) pairs a real policy keeps.
type admitRule int

const (
	admitAll admitRule = iota
	admitTop1
	admitTop2
)

// realPolicy covers the six real_* dataset types.
type realPolicy struct {
	admit       admitRule
	uniform     bool
	removeTypes bool
}

func (p realPolicy) compute(dt DatasetType, pc *PolicyContext) (*Result, error) {
	cat := pc.Catalog
	counts := cat.RegionTypeCounts()
	regionNames := cat.Regions()
	nr, nk := len(regionNames), len(cat.CellTypes())

	res := newResult(cat)
	removed := make([]bool, nk)
	if p.removeTypes {
		ids, err := drawRemoval(dt, nk, pc)
		if err != nil {
			return nil, err
		}
		for _, t := range ids {
			removed[t] = true
		}
		res.Removed = ids
	}

	var admitted [][]bool
	switch p.admit {
	case admitTop1:
		admitted = admitByTopShare(counts)
	case admitTop2:
		if nr < 2 {
			return nil, policyErrorf(dt, "needs at least 2 regions, catalog has %d: %w", nr, ErrInsufficientData)
		}
		admitted = admitByTopCount(counts, 2)
	default:
		admitted = make([][]bool, nr)
		for r := range counts {
			admitted[r] = make([]bool, nk)
			for t, n := range counts[r] {
				admitted[r][t] = n > 0
			}
		}
	}

	weights := make([][]float64, 0, nr)
	for r := 0; r < nr; r++ {
		row := make([]float64, nk)
		var any bool
		for t := 0; t < nk; t++ {
			if !admitted[r][t] || removed[t] {
				continue
			}
			any = true
			if p.uniform {
				row[t] = 1
			} else {
				row[t] = float64(counts[r][t])
			}
		}
		if !any {
			res.DroppedRegions = append(res.DroppedRegions, regionNames[r])
			continue
		}
		weights = append(weights, row)
		res.Regions = append(res.Regions, regionNames[r])
		res.Scope = append(res.Scope, r)
	}
	if len(weights) == 0 {
		return nil, policyErrorf(dt, "no region keeps an admitted cell type: %w", ErrInsufficientData)
	}
	if err := res.finalize(weights); err != nil {
		return nil, err
	}

	return res, nil
}

// drawRemoval picks a random non-empty proper subset of the nk cell types,
// returned ascending.
func drawRemoval(dt DatasetType, nk int, pc *PolicyContext) ([]int, error) {
	if nk < 2 {
		return nil, policyErrorf(dt, "needs at least 2 cell types, catalog has %d: %w", nk, ErrInsufficientData)
	}
	k := rng.UniformInt(pc.Rand, 1, nk-1)
	ids := rng.Choose(rng.Perm(nk, pc.Rand), k, pc.Rand)
	sort.Ints(ids)

	return ids, nil
}

// admitByTopShare admits each type to the region where it makes up the
// largest fraction of cells.
func admitByTopShare(counts [][]int) [][]bool {
	nr := len(counts)
	admitted := make([][]bool, nr)
	totals := make([]int, nr)
	nk := 0
	for r, row := range counts {
		admitted[r] = make([]bool, len(row))
		nk = len(row)
		for _, n := range row {
			totals[r] += n
		}
	}
	for t := 0; t < nk; t++ {
		best, bestShare := -1, 0.0
		for r := 0; r < nr; r++ {
			if counts[r][t] == 0 || totals[r] == 0 {
				continue
			}
			share := float64(counts[r][t]) / float64(totals[r])
			if share > bestShare {
				best, bestShare = r, share
			}
		}
		if best >= 0 {
			admitted[best][t] = true
		}
	}

	return admitted
}

// admitByTopCount admits each type to its top regions by absolute cell count
// (ties → lower region index). Regions without any cell of the type never qualify.
func admitByTopCount(counts [][]int, top int) [][]bool {
	nr := len(counts)
	admitted := make([][]bool, nr)
	nk := 0
	for r, row := range counts {
		admitted[r] = make([]bool, len(row))
		nk = len(row)
	}
	order := make([]int, nr)
	for t := 0; t < nk; t++ {
		for r := range order {
			order[r] = r
		}
		sort.SliceStable(order, func(a, b int) bool {
			return counts[order[a]][t] > counts[order[b]][t]
		})
		for i := 0; i < top && i < nr; i++ {
			if counts[order[i]][t] > 0 {
				admitted[order[i]][t] = true
			}
		}
	}

	return admitted
}
