// SPDX-License-Identifier: MIT
// Package: spotsynth/spot
//
// apportion.go — integer splitting of a total along a frequency vector.

package spot

import (
	"math"
	"math/rand"
	"sort"
)

// Apportion splits total into len(freq) non-negative integers proportional to
// freq using the largest-remainder method. Ties in the fractional part go to
// the lower index. freq need not be normalized; a vector without positive mass
// or a non-positive total yields all zeros.
//
// Invariant: Σ result == total whenever freq has positive mass and total > 0.
//
// Complexity: O(K log K).
func Apportion(freq []float64, total int) []int {
	out := make([]int, len(freq))
	sum := mass(freq)
	if sum <= 0 || total <= 0 {
		return out
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, 0, len(freq))
	assigned := 0
	for i, f := range freq {
		if f <= 0 {
			continue
		}
		q := f / sum * float64(total)
		fl := math.Floor(q)
		out[i] = int(fl)
		assigned += out[i]
		rems = append(rems, rem{idx: i, frac: q - fl})
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; assigned < total; i++ {
		out[rems[i%len(rems)].idx]++
		assigned++
	}
	// Rounding drift in q can overshoot by a cell; take it back from the largest.
	for assigned > total {
		big := 0
		for i := range out {
			if out[i] > out[big] {
				big = i
			}
		}
		out[big]--
		assigned--
	}

	return out
}

// share splits n of pool undealt cells along left (Σ left == pool) with exact
// integer largest remainders, ties to the lower index. For n ≤ pool every
// entry stays within [0, left[t]].
func share(left []int, pool, n int) []int {
	out := make([]int, len(left))
	if pool <= 0 || n <= 0 {
		return out
	}
	rems := make([]int64, len(left))
	order := make([]int, 0, len(left))
	assigned := 0
	for t, l := range left {
		p := int64(l) * int64(n)
		out[t] = int(p / int64(pool))
		rems[t] = p % int64(pool)
		assigned += out[t]
		order = append(order, t)
	}
	sort.SliceStable(order, func(a, b int) bool { return rems[order[a]] > rems[order[b]] })
	for i := 0; assigned < n && i < len(order); i++ {
		out[order[i]]++
		assigned++
	}

	return out
}

// multinomial draws total cells, each typed independently according to freq.
//
// Complexity: O(total · log K).
func multinomial(freq []float64, total int, r *rand.Rand) []int {
	out := make([]int, len(freq))
	cum := make([]float64, len(freq))
	var acc float64
	for i, f := range freq {
		if f > 0 {
			acc += f
		}
		cum[i] = acc
	}
	if acc <= 0 {
		return out
	}
	for n := 0; n < total; n++ {
		u := r.Float64() * acc
		i := sort.SearchFloat64s(cum, u)
		// SearchFloat64s finds the first cum >= u; step past zero-mass types
		// sharing that boundary and past u landing exactly on it.
		for i < len(cum)-1 && (cum[i] <= u || freq[i] <= 0) {
			i++
		}
		out[i]++
	}

	return out
}

// mass returns Σ max(f, 0).
func mass(freq []float64) float64 {
	var s float64
	for _, f := range freq {
		if f > 0 {
			s += f
		}
	}

	return s
}
