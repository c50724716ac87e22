// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels through the materializing path instead of the *Dense one.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return d
}

// MustFrom builds a *Dense from row-major data or fails the test.
func MustFrom(t *testing.T, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return d
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// randomDense fills an r×c matrix with standard normal entries from a fixed seed.
func randomDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for k := range data {
		data[k] = rng.NormFloat64()
	}

	return MustFrom(t, r, c, data...)
}

// randomSymmetric returns (G + Gᵀ)/2 for a Gaussian G.
func randomSymmetric(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	g := randomDense(t, n, n, seed)
	gt, err := matrix.Transpose(g)
	require.NoError(t, err)
	sum, err := matrix.Add(g, gt)
	require.NoError(t, err)
	out, err := matrix.Scale(sum, 0.5)
	require.NoError(t, err)

	return out
}

// requireClose asserts AllClose(a, b) with absolute tolerance atol.
func requireClose(t *testing.T, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ beyond %.1e:\nwant\n%v\ngot\n%v", atol, want, got)
}

// propOrthonormal asserts QᵀQ = I within delta.
func propOrthonormal(t *testing.T, q matrix.Matrix, delta float64) {
	t.Helper()
	require.Equal(t, q.Rows(), q.Cols())
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	qtq, err := matrix.Mul(qt, q)
	require.NoError(t, err)
	id, err := matrix.NewIdentity(q.Rows())
	require.NoError(t, err)
	requireClose(t, id, qtq, delta)
}
