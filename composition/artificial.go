// SPDX-License-Identifier: MIT
// Package: spotsynth/composition
//
// artificial.go — policies over synthetic regions region_1..region_n.
//
// Pipeline (each step consumes pc.Rand in this order, so a fixed seed fixes
// the whole table):
//  1. optional global removal of a random non-empty proper subset of types;
//  2. optional perturbed type s, set aside from the base layout;
//  3. base layout (distinct or overlap) of the remaining types;
//  4. per-region weights (uniform or U(0,1]), then the perturbation of s;
//  5. row normalization;
//  6. optional held-out type (recorded only).
//
// Complexity: O(R·K).

package composition

import (
	"fmt"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/rng"
)

type layout int

const (
	// layoutDistinct gives every type exactly one region.
	layoutDistinct layout = iota
	// layoutOverlap lets a type appear in 1..R regions; at least one type is shared.
	layoutOverlap
)

type weighting int

const (
	weightsUniform weighting = iota
	weightsDiverse
)

type perturbation int

const (
	perturbNone perturbation = iota
	// perturbDominant inflates s in every region.
	perturbDominant
	// perturbPartiallyDominant inflates s in all regions but one, where s sits
	// at the average of the other types.
	perturbPartiallyDominant
	// perturbDominantRare suppresses s in every region.
	perturbDominantRare
	// perturbRegionalRare suppresses s and confines it to one region.
	perturbRegionalRare
)

// Inflation and suppression ranges for the perturbed cell type.
const (
	DominantFactorMin = 5.0
	DominantFactorMax = 15.0
	RareFactorMin     = 1.0 / 15.0
	RareFactorMax     = 1.0 / 5.0
)

// artificialPolicy covers the eleven artificial_* dataset types.
type artificialPolicy struct {
	layout      layout
	weights     weighting
	perturb     perturbation
	removeTypes bool
	holdOut     bool
}

func (p artificialPolicy) compute(dt DatasetType, pc *PolicyContext) (*Result, error) {
	cat := pc.Catalog
	nk, nr := len(cat.CellTypes()), pc.NRegions
	res := newResult(cat)
	res.Regions = make([]string, nr)
	res.Scope = make([]int, nr)
	for r := range res.Regions {
		res.Regions[r] = fmt.Sprintf("%s%d", ArtificialRegionPrefix, r+1)
		res.Scope[r] = catalog.AnyRegion
	}

	available := make([]int, 0, nk)
	if p.removeTypes {
		ids, err := drawRemoval(dt, nk, pc)
		if err != nil {
			return nil, err
		}
		res.Removed = ids
		gone := make(map[int]bool, len(ids))
		for _, t := range ids {
			gone[t] = true
		}
		for t := 0; t < nk; t++ {
			if !gone[t] {
				available = append(available, t)
			}
		}
	} else {
		for t := 0; t < nk; t++ {
			available = append(available, t)
		}
	}

	if p.holdOut && nk < 2 {
		return nil, policyErrorf(dt, "needs at least 2 cell types, catalog has %d: %w", nk, ErrInsufficientData)
	}

	base := available
	if p.perturb != perturbNone {
		if len(available) < 2 {
			return nil, policyErrorf(dt, "needs at least 2 cell types, catalog has %d: %w", len(available), ErrInsufficientData)
		}
		if p.perturb == perturbPartiallyDominant && nr < 2 {
			return nil, policyErrorf(dt, "needs at least 2 regions, got %d: %w", nr, ErrInsufficientData)
		}
		i := pc.Rand.Intn(len(available))
		res.Dominant = available[i]
		base = make([]int, 0, len(available)-1)
		base = append(base, available[:i]...)
		base = append(base, available[i+1:]...)
	}

	var (
		pools [][]int
		err   error
	)
	switch p.layout {
	case layoutOverlap:
		pools, err = overlapLayout(dt, base, nr, pc)
	default:
		pools, err = distinctLayout(dt, base, nr, pc)
	}
	if err != nil {
		return nil, err
	}

	weights := make([][]float64, nr)
	for r, pool := range pools {
		weights[r] = make([]float64, nk)
		for _, t := range pool {
			if p.weights == weightsDiverse {
				weights[r][t] = rng.PositiveWeight(pc.Rand)
			} else {
				weights[r][t] = 1
			}
		}
	}
	if p.perturb != perturbNone {
		res.DominanceFactors = p.applyPerturbation(weights, pools, res.Dominant, pc)
	}
	if err = res.finalize(weights); err != nil {
		return nil, err
	}
	// Drawn last so the table matches the base type under the same seed.
	if p.holdOut {
		res.HeldOut = pc.Rand.Intn(nk)
	}

	return res, nil
}

// applyPerturbation sets the weight of s to factor × mean(other weights) in
// the affected regions and returns the factor per region (0 where s is absent).
func (p artificialPolicy) applyPerturbation(weights [][]float64, pools [][]int, s int, pc *PolicyContext) []float64 {
	nr := len(weights)
	factors := make([]float64, nr)
	switch p.perturb {
	case perturbDominant:
		for r := range factors {
			factors[r] = rng.Uniform(pc.Rand, DominantFactorMin, DominantFactorMax)
		}
	case perturbPartiallyDominant:
		exempt := pc.Rand.Intn(nr)
		for r := range factors {
			if r == exempt {
				factors[r] = 1
				continue
			}
			factors[r] = rng.Uniform(pc.Rand, DominantFactorMin, DominantFactorMax)
		}
	case perturbDominantRare:
		for r := range factors {
			factors[r] = rng.Uniform(pc.Rand, RareFactorMin, RareFactorMax)
		}
	case perturbRegionalRare:
		only := pc.Rand.Intn(nr)
		factors[only] = rng.Uniform(pc.Rand, RareFactorMin, RareFactorMax)
	}
	for r, f := range factors {
		if f == 0 {
			continue
		}
		var sum float64
		for _, t := range pools[r] {
			sum += weights[r][t]
		}
		weights[r][s] = f * sum / float64(len(pools[r]))
	}

	return factors
}

// distinctLayout shuffles the types, gives the first nr one region each and
// drops every remaining type into a random region.
func distinctLayout(dt DatasetType, types []int, nr int, pc *PolicyContext) ([][]int, error) {
	if len(types) < nr {
		return nil, policyErrorf(dt, "%d cell types cannot fill %d disjoint regions: %w",
			len(types), nr, ErrInsufficientData)
	}
	order := append([]int(nil), types...)
	rng.Shuffle(order, pc.Rand)
	pools := make([][]int, nr)
	for i, t := range order {
		r := i
		if i >= nr {
			r = pc.Rand.Intn(nr)
		}
		pools[r] = append(pools[r], t)
	}

	return sortPools(pools), nil
}

// overlapLayout assigns each type to a random number of random regions, refills
// empty regions and guarantees at least one type is shared by two regions.
func overlapLayout(dt DatasetType, types []int, nr int, pc *PolicyContext) ([][]int, error) {
	if nr < 2 {
		return nil, policyErrorf(dt, "needs at least 2 regions, got %d: %w", nr, ErrInsufficientData)
	}
	if len(types) == 0 {
		return nil, policyErrorf(dt, "no cell types left to place: %w", ErrInsufficientData)
	}
	member := make([][]bool, nr)
	for r := range member {
		member[r] = make([]bool, len(types))
	}
	regionIDs := rng.Perm(nr, pc.Rand)
	degree := make([]int, len(types))
	for i := range types {
		d := rng.UniformInt(pc.Rand, 1, nr)
		for _, r := range rng.Choose(regionIDs, d, pc.Rand) {
			member[r][i] = true
		}
		degree[i] = d
	}
	for r := range member {
		if !anyTrue(member[r]) {
			i := pc.Rand.Intn(len(types))
			member[r][i] = true
			degree[i]++
		}
	}
	shared := false
	for _, d := range degree {
		if d >= 2 {
			shared = true
			break
		}
	}
	if !shared {
		i := pc.Rand.Intn(len(types))
		var home int
		for r := range member {
			if member[r][i] {
				home = r
				break
			}
		}
		other := (home + 1 + pc.Rand.Intn(nr-1)) % nr
		member[other][i] = true
	}

	pools := make([][]int, nr)
	for r := range member {
		for i, ok := range member[r] {
			if ok {
				pools[r] = append(pools[r], types[i])
			}
		}
	}

	return sortPools(pools), nil
}

func anyTrue(v []bool) bool {
	for _, b := range v {
		if b {
			return true
		}
	}

	return false
}

// sortPools orders each pool ascending by cell-type index (insertion sort; pools are small).
func sortPools(pools [][]int) [][]int {
	for _, pool := range pools {
		for i := 1; i < len(pool); i++ {
			for j := i; j > 0 && pool[j] < pool[j-1]; j-- {
				pool[j], pool[j-1] = pool[j-1], pool[j]
			}
		}
	}

	return pools
}
