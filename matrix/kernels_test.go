// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/matrix"
)

func TestAddSubScale(t *testing.T) {
	a := MustFrom(t, 2, 2, 1, 2, 3, 4)
	b := MustFrom(t, 2, 2, 4, 3, 2, 1)

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 5, 5, 5, 5), sum, 0)

	diff, err := matrix.Sub(a, hide{b})
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, -3, -1, 1, 3), diff, 0)

	sc, err := matrix.Scale(hide{a}, -2)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, -2, -4, -6, -8), sc, 0)

	axpy, err := matrix.AddScaled(a, 0.5, b)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 3, 3.5, 4, 4.5), axpy, 0)

	// operands untouched
	requireClose(t, MustFrom(t, 2, 2, 1, 2, 3, 4), a, 0)

	_, err = matrix.Add(a, MustDense(t, 3, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Scale(a, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.AddScaled(a, math.Inf(-1), b)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestLinearCombination(t *testing.T) {
	a := MustFrom(t, 2, 2, 1, 0, 0, 1)
	b := MustFrom(t, 2, 2, 0, 1, 1, 0)

	got, err := matrix.LinearCombination([]float64{0.25, 0.75}, []matrix.Matrix{a, hide{b}})
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 0.25, 0.75, 0.75, 0.25), got, 1e-15)

	_, err = matrix.LinearCombination(nil, nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.LinearCombination([]float64{1}, []matrix.Matrix{a, b})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.LinearCombination([]float64{1, 1}, []matrix.Matrix{a, MustDense(t, 1, 2)})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.LinearCombination([]float64{1, math.NaN()}, []matrix.Matrix{a, b})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMulTranspose(t *testing.T) {
	a := MustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustFrom(t, 3, 2, 7, 8, 9, 10, 11, 12)

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 58, 64, 139, 154), got, 0)

	fallback, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireClose(t, got, fallback, 0)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	r, c := at.Shape()
	assert.Equal(t, [2]int{3, 2}, [2]int{r, c})
	assert.Equal(t, 4.0, MustAt(t, at, 0, 1))

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCongruenceCommutatorTrace(t *testing.T) {
	// 90° rotation swaps the diagonal of a diagonal matrix.
	s := MustFrom(t, 2, 2, 0, -1, 1, 0)
	x := MustFrom(t, 2, 2, 1, 0, 0, 3)

	got, err := matrix.Congruence(s, x)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 3, 0, 0, 1), got, 1e-15)

	diag := MustFrom(t, 2, 2, 2, 0, 0, 5)
	comm, err := matrix.Commutator(x, diag)
	require.NoError(t, err)
	requireClose(t, MustDense(t, 2, 2), comm, 0)

	a := MustFrom(t, 2, 2, 0, 1, 0, 0)
	b := MustFrom(t, 2, 2, 0, 0, 1, 0)
	comm, err = matrix.Commutator(a, b)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 1, 0, 0, -1), comm, 0)

	tr, err := matrix.Trace(hide{x})
	require.NoError(t, err)
	assert.Equal(t, 4.0, tr)

	shifted, err := matrix.AddIdentity(x, 0.5)
	require.NoError(t, err)
	requireClose(t, MustFrom(t, 2, 2, 1.5, 0, 0, 3.5), shifted, 0)

	_, err = matrix.Congruence(s, MustDense(t, 3, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Trace(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestConstructors(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	tr, err := matrix.Trace(id)
	require.NoError(t, err)
	assert.Equal(t, 3.0, tr)

	d, err := matrix.NewDiagonal([]float64{1, 2})
	require.NoError(t, err)
	diag, err := matrix.Diagonal(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, diag)

	z, err := matrix.ZerosLike(MustDense(t, 2, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, z.Cols())

	_, err = matrix.NewDiagonal(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
