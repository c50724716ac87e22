// SPDX-License-Identifier: MIT

// Package edges holds the data model of the engine: an Edge is an immutable
// pair of real n×n generators (N, D), and a Set is an ordered family of edges
// with a weight vector on the probability simplex.
//
// The aggregate generators (Σ wᵢNᵢ, Σ wᵢDᵢ) are recomputed on demand and never
// cached, so changing weights can never leave a stale aggregate behind.
//
// Generators are seeded explicitly:
//
//	set, err := edges.Generate(3, 4, 42)    // heterogeneous, non-commuting
//	comm, err := edges.GenerateCommuting(3, 4, 42)
//	copies, err := edges.IdenticalCopies(e, 4)
//
// Orthogonal transforms are applied congruently (X ← SᵀXS) to every N and D
// at once via Set.ApplyTransform.
package edges
