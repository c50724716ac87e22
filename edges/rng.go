// SPDX-License-Identifier: MIT
// Package edges - RNG utilities shared by the generators.
//
// Goals:
//   - Determinism: same seed ⇒ identical edges across runs and platforms.
//   - Encapsulation: a single RNG factory; no time-based or global sources.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every generator call builds its own.
//   - Use SeedStream to hand independent seeds to parallel runs.

package edges

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// with the SplitMix64 finalizer, so neighbouring streams are decorrelated.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// SeedStream returns k derived seeds DeriveSeed(base, 0..k-1).
// A zero base follows the seed==0 policy.
func SeedStream(base int64, k int) []int64 {
	if base == 0 {
		base = defaultRNGSeed
	}
	out := make([]int64, 0, max(k, 0))
	for i := 0; i < k; i++ {
		out = append(out, DeriveSeed(base, uint64(i)))
	}

	return out
}

// gaussian fills an n×n matrix with standard normal draws in row-major order.
func gaussian(rng *rand.Rand, n int) []float64 {
	data := make([]float64, n*n)
	for k := range data {
		data[k] = rng.NormFloat64()
	}

	return data
}
