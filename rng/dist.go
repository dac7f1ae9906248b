// SPDX-License-Identifier: MIT
// Package: spotsynth/rng
//
// dist.go — scalar distributions used by the composition and spot stages.

package rng

import (
	"math"
	"math/rand"
)

// maxRedraws bounds the rejection loop of TruncatedNormalInt.
const maxRedraws = 64

// UniformInt returns an integer uniformly drawn from [lo, hi] inclusive.
// If hi < lo the bounds are swapped.
//
// Complexity: O(1).
func UniformInt(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}

	return lo + orDefault(r).Intn(hi-lo+1)
}

// Uniform returns a float uniformly drawn from [lo, hi).
//
// Complexity: O(1).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi == lo {
		return lo
	}

	return lo + orDefault(r).Float64()*(hi-lo)
}

// PositiveWeight returns a draw from U(0,1]; it is never zero, so a weight
// produced here keeps its cell type admitted after normalization.
func PositiveWeight(r *rand.Rand) float64 {
	return 1 - orDefault(r).Float64()
}

// TruncatedNormalInt draws round(N(mean, sd)) conditioned on being ≥ 1.
// Non-positive draws are redrawn up to maxRedraws times and then clamped to 1,
// so the result is always a positive integer.
//
// Complexity: O(1) expected.
func TruncatedNormalInt(r *rand.Rand, mean, sd float64) int {
	r = orDefault(r)
	for i := 0; i < maxRedraws; i++ {
		v := math.Round(r.NormFloat64()*sd + mean)
		if v >= 1 {
			if v > math.MaxInt32 {
				return math.MaxInt32
			}
			return int(v)
		}
	}

	return 1
}
