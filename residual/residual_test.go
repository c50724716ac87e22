// SPDX-License-Identifier: MIT

package residual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/matrix"
	"github.com/katalvlaran/bridgenull/residual"
)

func aggregate(t *testing.T, seed int64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	s, err := edges.Generate(3, 4, seed)
	require.NoError(t, err)
	n, d, err := s.Aggregate()
	require.NoError(t, err)

	return n, d
}

func TestCycleResidual_ZeroEpsilon(t *testing.T) {
	n, d := aggregate(t, 42)
	for _, kind := range []residual.NormKind{residual.Frobenius, residual.Spectral} {
		for _, r := range []float64{-1e6, -3, 0, 0.5, 1e9} {
			v, err := residual.CycleResidual(n, d, r, 0, kind)
			require.NoError(t, err)
			assert.Equal(t, 0.0, v)
		}
	}
}

func TestCycleResidual_ScalarCase(t *testing.T) {
	// 1×1: ‖exp(ε(d + R n)) − 1‖ = |e^{ε(d+Rn)} − 1|
	n, _ := matrix.NewDenseFrom(1, 1, []float64{2})
	d, _ := matrix.NewDenseFrom(1, 1, []float64{3})

	v, err := residual.CycleResidual(n, d, -1, 0.1, residual.Frobenius)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Expm1(0.1), v, 1e-12)

	v, err = residual.CycleResidual(n, d, -1.5, 0.1, residual.Spectral)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "R = −d/n closes the scalar cycle exactly")
}

func TestCycleResidual_SpectralBelowFrobenius(t *testing.T) {
	n, d := aggregate(t, 42)
	for _, eps := range []float64{0.1, 0.01, 0.001} {
		fro, err := residual.CycleResidual(n, d, -0.7, eps, residual.Frobenius)
		require.NoError(t, err)
		spectral, err := residual.CycleResidual(n, d, -0.7, eps, residual.Spectral)
		require.NoError(t, err)
		assert.Greater(t, spectral, 0.0)
		assert.LessOrEqual(t, spectral, fro*(1+1e-12))
	}
}

func TestCycleResidual_LinearInEpsilon(t *testing.T) {
	// For small ε, ‖e^{εA} − I‖ ≈ ε‖A‖.
	n, d := aggregate(t, 42)
	gen, err := matrix.AddScaled(d, 0.3, n)
	require.NoError(t, err)
	want, err := matrix.FrobeniusNorm(gen)
	require.NoError(t, err)

	eps := 1e-6
	v, err := residual.CycleResidual(n, d, 0.3, eps, residual.Frobenius)
	require.NoError(t, err)
	assert.InEpsilon(t, want*eps, v, 1e-4)
}

func TestCycleResidual_Errors(t *testing.T) {
	n, d := aggregate(t, 1)
	_, err := residual.CycleResidual(n, d, 0, -0.1, residual.Frobenius)
	require.ErrorIs(t, err, residual.ErrBadEpsilon)
	_, err = residual.CycleResidual(n, d, 0, math.NaN(), residual.Frobenius)
	require.ErrorIs(t, err, residual.ErrBadEpsilon)
	_, err = residual.CycleResidual(n, d, math.Inf(1), 0.1, residual.Frobenius)
	require.ErrorIs(t, err, residual.ErrBadBridge)
	_, err = residual.CycleResidual(n, d, 0, 0.1, residual.NormKind(9))
	require.ErrorIs(t, err, residual.ErrUnknownNorm)

	small, _ := matrix.NewIdentity(2)
	_, err = residual.CycleResidual(n, small, 0, 0.1, residual.Frobenius)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = residual.CycleResidual(nil, d, 0, 0.1, residual.Frobenius)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestObjective(t *testing.T) {
	n, d := aggregate(t, 42)
	f := residual.Objective(n, d, 0.01, residual.Frobenius)
	direct, err := residual.CycleResidual(n, d, 0.2, 0.01, residual.Frobenius)
	require.NoError(t, err)
	assert.Equal(t, direct, f(0.2))
	assert.True(t, math.IsInf(f(math.NaN()), 1))
}

func TestEdgeProductResidual(t *testing.T) {
	s, err := edges.Generate(3, 4, 42)
	require.NoError(t, err)

	v, err := residual.EdgeProductResidual(s, 0.4, 0, residual.Spectral)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = residual.EdgeProductResidual(s, 0.4, 0.01, residual.Spectral)
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)

	// A single scalar edge closes at R = n/d.
	n, _ := matrix.NewDenseFrom(1, 1, []float64{2})
	d, _ := matrix.NewDenseFrom(1, 1, []float64{4})
	e, _ := edges.NewEdge(n, d)
	one, _ := edges.NewSet(e)
	v, err = residual.EdgeProductResidual(one, 0.5, 0.3, residual.Frobenius)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = residual.EdgeProductResidual(s, 0, -1, residual.Frobenius)
	require.ErrorIs(t, err, residual.ErrBadEpsilon)
}

func TestNormKind_Text(t *testing.T) {
	for in, want := range map[string]residual.NormKind{
		"frobenius": residual.Frobenius,
		"FRO":       residual.Frobenius,
		"spectral":  residual.Spectral,
		" 2 ":       residual.Spectral,
	} {
		got, err := residual.ParseNormKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := residual.ParseNormKind("nuclear")
	require.ErrorIs(t, err, residual.ErrUnknownNorm)

	b, err := residual.Spectral.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "spectral", string(b))

	var k residual.NormKind
	require.NoError(t, k.UnmarshalText([]byte("spectral")))
	assert.Equal(t, residual.Spectral, k)
	assert.Equal(t, "NormKind(7)", residual.NormKind(7).String())
}
