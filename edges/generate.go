// SPDX-License-Identifier: MIT

package edges

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/bridgenull/matrix"
)

// Generate draws m random edges of size n from an explicit seed.
// For every edge, A and B are n×n standard normal (A drawn first) and
//
//	D = AᵀA + DShift·I   (symmetric positive definite)
//	N = BᵀB              (symmetric positive semidefinite)
//
// The same (n, m, seed) always yields the same Set. seed==0 uses a fixed default.
//
// Errors: ErrBadParameter for n < 1 or m < 1.
func Generate(n, m int, seed int64) (*Set, error) {
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("Generate(n=%d, m=%d): %w", n, m, ErrBadParameter)
	}
	rng := rngFromSeed(seed)
	es := make([]*Edge, m)
	for i := range es {
		d, err := gram(rng, n, DShift)
		if err != nil {
			return nil, fmt.Errorf("Generate: edge %d: D: %w", i, err)
		}
		nm, err := gram(rng, n, 0)
		if err != nil {
			return nil, fmt.Errorf("Generate: edge %d: N: %w", i, err)
		}
		es[i] = &Edge{n: nm, d: d}
	}

	return NewSet(es...)
}

// gram draws a Gaussian G and returns GᵀG + shift·I.
func gram(rng *rand.Rand, n int, shift float64) (*matrix.Dense, error) {
	g, err := matrix.NewDenseFrom(n, n, gaussian(rng, n))
	if err != nil {
		return nil, err
	}
	gt, err := matrix.Transpose(g)
	if err != nil {
		return nil, err
	}
	gg, err := matrix.Mul(gt, g)
	if err != nil {
		return nil, err
	}
	if shift == 0 {
		return gg, nil
	}

	return matrix.AddIdentity(gg, shift)
}

// GenerateCommuting draws m edges that share one random orthogonal eigenbasis Q:
//
//	Nᵢ = Q·diag(λᵢ)·Qᵀ,  λᵢ ~ U(0,1) + 0.1
//	Dᵢ = Q·diag(μᵢ)·Qᵀ,  μᵢ ~ U(0,1) + 0.2
//
// Every pair of generators commutes, so the cycle can close exactly and the
// proportionality test has a well-defined target.
//
// Errors: ErrBadParameter for n < 1 or m < 1.
func GenerateCommuting(n, m int, seed int64) (*Set, error) {
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("GenerateCommuting(n=%d, m=%d): %w", n, m, ErrBadParameter)
	}
	rng := rngFromSeed(seed)
	g, err := matrix.NewDenseFrom(n, n, gaussian(rng, n))
	if err != nil {
		return nil, fmt.Errorf("GenerateCommuting: %w", err)
	}
	q, _, err := matrix.QR(g)
	if err != nil {
		return nil, fmt.Errorf("GenerateCommuting: %w", err)
	}
	qt, err := matrix.Transpose(q)
	if err != nil {
		return nil, fmt.Errorf("GenerateCommuting: %w", err)
	}

	es := make([]*Edge, m)
	lam := make([]float64, n)
	mu := make([]float64, n)
	for i := range es {
		for k := 0; k < n; k++ {
			lam[k] = rng.Float64() + 0.1
		}
		for k := 0; k < n; k++ {
			mu[k] = rng.Float64() + 0.2
		}
		nm, err := inBasis(qt, lam)
		if err != nil {
			return nil, fmt.Errorf("GenerateCommuting: edge %d: %w", i, err)
		}
		d, err := inBasis(qt, mu)
		if err != nil {
			return nil, fmt.Errorf("GenerateCommuting: edge %d: %w", i, err)
		}
		es[i] = &Edge{n: nm, d: d}
	}

	return NewSet(es...)
}

// inBasis returns Sᵀ·diag(v)·S; with S = Qᵀ this is Q·diag(v)·Qᵀ.
func inBasis(s *matrix.Dense, v []float64) (*matrix.Dense, error) {
	diag, err := matrix.NewDiagonal(v)
	if err != nil {
		return nil, err
	}

	return matrix.Congruence(s, diag)
}

// IdenticalCopies returns a Set of m copies of one edge.
// Its aggregate equals the edge itself under any simplex weights.
func IdenticalCopies(e *Edge, m int) (*Set, error) {
	if e == nil {
		return nil, fmt.Errorf("IdenticalCopies: %w", ErrEmptySet)
	}
	if m < 1 {
		return nil, fmt.Errorf("IdenticalCopies(m=%d): %w", m, ErrBadParameter)
	}
	es := make([]*Edge, m)
	for i := range es {
		es[i] = e
	}

	return NewSet(es...)
}

// IdenticalCopiesOfAggregate returns m copies of the current aggregate of s.
func IdenticalCopiesOfAggregate(s *Set, m int) (*Set, error) {
	nAgg, dAgg, err := s.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("IdenticalCopiesOfAggregate: %w", err)
	}

	return IdenticalCopies(&Edge{n: nAgg, d: dAgg}, m)
}
