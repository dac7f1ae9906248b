// SPDX-License-Identifier: MIT
// Package: spotsynth/spot
//
// spot.go — Spot and Compose.
//
// Contract:
//   - Every composed spot has Total ≥ 1 and Σ Counts == Total.
//   - Counts[t] > 0 only where freq[t] > 0.
//   - LargestRemainder: Σ over the region's spots of Counts[t] is within one
//     cell of freq[t]·Σ Total (normalized freq).
//   - Compose consumes r sequentially: totals and (in Multinomial mode) type
//     draws, spot by spot. Cells are filled later by the sampler.

package spot

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/spotsynth/rng"
)

// Mode selects how a spot's total is split across cell types.
type Mode int

const (
	// LargestRemainder is the deterministic proportional split (default).
	LargestRemainder Mode = iota
	// Multinomial types each cell independently.
	Multinomial
)

// String returns "largest_remainder" or "multinomial".
func (m Mode) String() string {
	switch m {
	case LargestRemainder:
		return "largest_remainder"
	case Multinomial:
		return "multinomial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "largest_remainder":
		return LargestRemainder, nil
	case "multinomial":
		return Multinomial, nil
	}

	return 0, fmt.Errorf("ParseMode(%q): unknown mode", s)
}

// Spot is one synthetic pseudo-bulk sample.
type Spot struct {
	Name        string
	Region      string
	RegionIndex int   // row of the region in the frequency table
	Total       int   // number of cells
	Counts      []int // cells per cell type, indexed like the frequency vector
	Cells       []int // sampled catalog cell indices; nil until sampled
	Mock        bool  // belongs to the gene-shuffled control region
}

// Relative returns Counts divided by Total.
func (s Spot) Relative() []float64 {
	out := make([]float64, len(s.Counts))
	if s.Total <= 0 {
		return out
	}
	for t, n := range s.Counts {
		out[t] = float64(n) / float64(s.Total)
	}

	return out
}

// NumTypes returns how many cell types contribute at least one cell.
func (s Spot) NumTypes() int {
	n := 0
	for _, c := range s.Counts {
		if c > 0 {
			n++
		}
	}

	return n
}

// Compose draws nSpots spots for one region.
//
// Totals are TruncatedNormalInt(mean, sd); sd == 0 makes every total
// round(mean) (at least 1).
//
// Errors: ErrBadFrequency, ErrBadSpotCount, ErrBadTotal.
//
// Complexity: O(nSpots · K log K) for LargestRemainder,
// O(Σ totals · log K) for Multinomial.
func Compose(region string, regionIdx int, freq []float64, nSpots int, mean, sd float64, r *rand.Rand, mode Mode) ([]Spot, error) {
	if err := checkFrequency(freq); err != nil {
		return nil, fmt.Errorf("Compose(%s): %w", region, err)
	}
	if nSpots < 1 {
		return nil, fmt.Errorf("Compose(%s): %d spots: %w", region, nSpots, ErrBadSpotCount)
	}
	if !(mean > 0) || math.IsInf(mean, 0) || !(sd >= 0) || math.IsInf(sd, 0) {
		return nil, fmt.Errorf("Compose(%s): mean=%g sd=%g: %w", region, mean, sd, ErrBadTotal)
	}
	if r == nil {
		r = rng.FromSeed(0)
	}

	spots := make([]Spot, nSpots)
	for k := range spots {
		total := rng.TruncatedNormalInt(r, mean, sd)
		spots[k] = Spot{
			Name:        fmt.Sprintf("%s_%d", region, k+1),
			Region:      region,
			RegionIndex: regionIdx,
			Total:       total,
		}
		if mode == Multinomial {
			spots[k].Counts = multinomial(freq, total, r)
		}
	}
	if mode != Multinomial {
		spread(spots, freq)
	}

	return spots, nil
}

// spread apportions the region's cells as a whole, then deals them out spot
// by spot in proportion to what is still undealt. Each spot keeps its own
// total and every type's region sum is within one cell of freq · Σ totals.
//
// Complexity: O(nSpots · K log K).
func spread(spots []Spot, freq []float64) {
	pool := 0
	for _, s := range spots {
		pool += s.Total
	}
	left := Apportion(freq, pool)
	for k := range spots {
		counts := share(left, pool, spots[k].Total)
		for t, c := range counts {
			left[t] -= c
		}
		pool -= spots[k].Total
		spots[k].Counts = counts
	}
}

func checkFrequency(freq []float64) error {
	if len(freq) == 0 {
		return fmt.Errorf("empty: %w", ErrBadFrequency)
	}
	var sum float64
	for t, f := range freq {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return fmt.Errorf("entry %d = %g: %w", t, f, ErrBadFrequency)
		}
		sum += f
	}
	if sum <= 0 {
		return fmt.Errorf("zero mass: %w", ErrBadFrequency)
	}

	return nil
}
