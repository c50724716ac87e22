// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestNewDenseFrom(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	m := MustFrom(t, 2, 3, data...)
	data[0] = 100 // the constructor copied the slice
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, 6.0, MustAt(t, m, 1, 2))

	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 2)
	require.NoError(t, m.Set(1, 1, 3.5))
	assert.Equal(t, 3.5, MustAt(t, m, 1, 1))

	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestDense_CloneIsIndependent(t *testing.T) {
	m := MustFrom(t, 2, 2, 1, 2, 3, 4)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))

	raw := m.RawCopy()
	raw[3] = -1
	assert.Equal(t, 4.0, MustAt(t, m, 1, 1))
}

func TestDense_DoApplyString(t *testing.T) {
	m := MustFrom(t, 2, 2, 1, 2, 3, 4)

	var visited int
	m.Do(func(i, j int, v float64) bool {
		visited++
		return v < 2 // stop at the second cell
	})
	assert.Equal(t, 2, visited)

	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return 2 * v }))
	assert.Equal(t, "[2, 4]\n[6, 8]\n", m.String())

	err := m.Apply(func(_, _ int, v float64) float64 { return v * math.Inf(1) })
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestValidators(t *testing.T) {
	sq := MustDense(t, 2, 2)
	rect := MustDense(t, 2, 3)

	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSquareNonNil(rect), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateBinarySameShape(sq, rect), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquarePair(sq, MustDense(t, 3, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateMulCompatible(rect, rect), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateFinite(math.NaN()), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateSquarePair(sq, sq))

	asym := MustFrom(t, 2, 2, 1, 2, 3, 4)
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-9), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, 1.5))

	assert.True(t, matrix.IsZeroOffDiagonal(MustFrom(t, 2, 2, 1, 0, 0, 2), 0))
	assert.False(t, matrix.IsZeroOffDiagonal(asym, 0.1))
}
