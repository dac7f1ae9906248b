// SPDX-License-Identifier: MIT
// Package: spotsynth/rng
//
// rng.go — master generators, per-stage and per-spot streams, permutations.

package rng

import "math/rand"

// DefaultSeed replaces a zero master seed, so "no seed" still reproduces.
const DefaultSeed int64 = 1

// normalize maps the zero seed onto DefaultSeed.
func normalize(seed int64) int64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// FromSeed returns the generator for seed (0 means DefaultSeed).
func FromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(normalize(seed)))
}

// DeriveSeed hashes (parent, stream) into a child seed with the SplitMix64
// finalizer. Consecutive stream ids give unrelated children.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	z := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return int64(z ^ (z >> 31))
}

// Stream returns the generator of sub-stream id under a master seed. It reads
// no shared state: any goroutine, in any order, gets the same sequence.
//
// Complexity: O(1).
func Stream(seed int64, id uint64) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(normalize(seed), id)))
}

// orDefault substitutes the DefaultSeed generator for nil.
func orDefault(r *rand.Rand) *rand.Rand {
	if r == nil {
		return FromSeed(0)
	}

	return r
}

// Shuffle permutes a in place (Fisher–Yates, from the back).
//
// Complexity: O(n).
func Shuffle(a []int, r *rand.Rand) {
	if len(a) < 2 {
		return
	}
	r = orDefault(r)
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a shuffled 0..n-1; empty for n <= 0.
func Perm(n int, r *rand.Rand) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(p, r)

	return p
}

// Choose returns k distinct elements of pool, leaving pool untouched. k is
// clamped to [0, len(pool)].
//
// Complexity: O(len(pool)) space, O(k) swaps.
func Choose(pool []int, k int, r *rand.Rand) []int {
	if k <= 0 {
		return []int{}
	}
	k = min(k, len(pool))
	r = orDefault(r)
	buf := append([]int(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf[:k:k]
}
