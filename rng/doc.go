// Package rng centralizes deterministic random generation for the generator.
//
// Goals:
//   - Determinism: same seed ⇒ identical datasets across platforms and
//     regardless of how many workers realize spots in parallel.
//   - Encapsulation: one RNG factory; no time-based sources hidden anywhere.
//   - Explicit threading: every sampling step receives its *rand.Rand.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use Stream(seed, id) to give each spot its own generator derived from the
//     master seed and the spot ordinal.
package rng
