// SPDX-License-Identifier: MIT

package jointdiag_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/matrix"
)

func aggregate(t *testing.T, s *edges.Set) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	n, d, err := s.Aggregate()
	require.NoError(t, err)

	return n, d
}

func requireOrthogonal(t *testing.T, s matrix.Matrix) {
	t.Helper()
	sts, err := matrix.Mul(mustT(t, s), s)
	require.NoError(t, err)
	id, _ := matrix.NewIdentity(s.Rows())
	ok, err := matrix.AllClose(sts, id, 0, 1e-10)
	require.NoError(t, err)
	require.True(t, ok, "SᵀS = I")
}

func mustT(t *testing.T, m matrix.Matrix) *matrix.Dense {
	t.Helper()
	tr, err := matrix.Transpose(m)
	require.NoError(t, err)

	return tr
}

func requireCongruent(t *testing.T, s, x, want matrix.Matrix) {
	t.Helper()
	got, err := matrix.Congruence(s, x)
	require.NoError(t, err)
	ok, err := matrix.AllClose(got, want, 1e-9, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDiagonalize_CommutingPairConverges(t *testing.T) {
	set, err := edges.GenerateCommuting(4, 3, 7)
	require.NoError(t, err)
	n, d := aggregate(t, set)

	res, err := jointdiag.Diagonalize(n, d, jointdiag.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Positive(t, res.OffBefore)
	assert.Less(t, res.OffAfter, 1e-16*(1+res.OffBefore))
	assert.Greater(t, res.ReductionFactor, 1e6)
	assert.InDelta(t, res.OffNAfter+res.OffDAfter, res.OffAfter, 1e-30)

	requireOrthogonal(t, res.S)
	requireCongruent(t, res.S, n, res.N)
	requireCongruent(t, res.S, d, res.D)
}

func TestDiagonalize_EnergyNeverIncreases(t *testing.T) {
	for _, seed := range []int64{1, 42, 99} {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			set, err := edges.Generate(4, 3, seed)
			require.NoError(t, err)
			n, d := aggregate(t, set)

			opts := jointdiag.DefaultOptions()
			opts.MaxIter = 25
			var sweeps []jointdiag.Sweep
			opts.OnSweep = func(s jointdiag.Sweep) { sweeps = append(sweeps, s) }

			res, err := jointdiag.Diagonalize(n, d, opts)
			require.NoError(t, err)
			require.Equal(t, res.History, sweeps)
			require.Len(t, sweeps, res.Iterations)
			assert.LessOrEqual(t, res.Iterations, 25)

			slack := 1e-12 * res.OffBefore
			prev := res.OffBefore
			for _, s := range res.History {
				assert.LessOrEqual(t, s.Energy, prev+slack, "sweep %d", s.K)
				prev = s.Energy
			}
			assert.LessOrEqual(t, res.OffAfter, res.OffBefore+slack)
			requireOrthogonal(t, res.S)
			requireCongruent(t, res.S, n, res.N)
		})
	}
}

func TestDiagonalize_SingleMatrix(t *testing.T) {
	a, err := matrix.NewDenseFrom(2, 2, []float64{2, 1, 1, 2})
	require.NoError(t, err)

	res, err := jointdiag.Diagonalize(a, a, jointdiag.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.OffAfter, 1e-24)

	diag, err := matrix.Diagonal(res.N)
	require.NoError(t, err)
	sort.Float64s(diag)
	assert.InDeltaSlice(t, []float64{1, 3}, diag, 1e-12)
}

func TestDiagonalize_AlreadyDiagonal(t *testing.T) {
	n, _ := matrix.NewDiagonal([]float64{1, 2, 3})
	d, _ := matrix.NewDiagonal([]float64{3, 1, 2})

	res, err := jointdiag.Diagonalize(n, d, jointdiag.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, 1.0, res.ReductionFactor)
	id, _ := matrix.NewIdentity(3)
	assert.Equal(t, id.RawCopy(), res.S.RawCopy())
}

func TestDiagonalize_RelativeTolStopsEarlier(t *testing.T) {
	set, err := edges.Generate(4, 3, 5)
	require.NoError(t, err)
	n, d := aggregate(t, set)

	abs := jointdiag.DefaultOptions()
	abs.MaxIter = 50
	ra, err := jointdiag.Diagonalize(n, d, abs)
	require.NoError(t, err)

	rel := abs
	rel.Relative = true
	rel.Tol = 0.5
	rr, err := jointdiag.Diagonalize(n, d, rel)
	require.NoError(t, err)
	assert.True(t, rr.Converged)
	assert.LessOrEqual(t, rr.Iterations, ra.Iterations)
}

func TestDiagonalize_MaxIterNotConverged(t *testing.T) {
	set, err := edges.Generate(4, 3, 42)
	require.NoError(t, err)
	n, d := aggregate(t, set)
	comm, err := matrix.Commutator(n, d)
	require.NoError(t, err)
	cn, err := matrix.FrobeniusNorm(comm)
	require.NoError(t, err)
	require.Greater(t, cn, 1e-6, "pair must not commute")

	opts := jointdiag.DefaultOptions()
	opts.MaxIter = 1
	opts.Tol = 0
	res, err := jointdiag.Diagonalize(n, d, opts)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Positive(t, res.OffAfter)
	assert.LessOrEqual(t, res.OffAfter, res.OffBefore)
}

func TestDiagonalize_Errors(t *testing.T) {
	a, _ := matrix.NewIdentity(2)
	b, _ := matrix.NewIdentity(3)
	_, err := jointdiag.Diagonalize(a, b, jointdiag.DefaultOptions())
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = jointdiag.Diagonalize(nil, a, jointdiag.DefaultOptions())
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	for _, opts := range []jointdiag.Options{
		{Tol: -1, MaxIter: 10},
		{Tol: math.NaN(), MaxIter: 10},
		{Tol: 1e-9, MaxIter: 0},
	} {
		_, err = jointdiag.Diagonalize(a, a, opts)
		require.ErrorIs(t, err, jointdiag.ErrBadOptions)
	}
}

func TestApplyToSet(t *testing.T) {
	set, err := edges.GenerateCommuting(3, 4, 21)
	require.NoError(t, err)
	require.NoError(t, set.SetWeights([]float64{0.1, 0.2, 0.3, 0.4}))
	n0, d0 := aggregate(t, set)

	next, res, err := jointdiag.ApplyToSet(set, jointdiag.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, set.Weights(), next.Weights())

	n1, d1 := aggregate(t, next)
	for _, pair := range [][2]matrix.Matrix{{n1, res.N}, {d1, res.D}} {
		ok, err := matrix.AllClose(pair[0], pair[1], 1e-9, 1e-9)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// the input set keeps its generators
	n2, d2 := aggregate(t, set)
	assert.Equal(t, n0.RawCopy(), n2.RawCopy())
	assert.Equal(t, d0.RawCopy(), d2.RawCopy())

	// every edge of a commuting family becomes diagonal in the shared basis
	diag, err := edges.CommutatorDiagnostics(next)
	require.NoError(t, err)
	assert.True(t, diag.EffectivelyCommuting(1e-9))
	for i, e := range next.Edges() {
		assert.True(t, matrix.IsZeroOffDiagonal(e.N(), 1e-8), "edge %d N", i)
		assert.True(t, matrix.IsZeroOffDiagonal(e.D(), 1e-8), "edge %d D", i)
	}

	_, _, err = jointdiag.ApplyToSet(nil, jointdiag.DefaultOptions())
	require.ErrorIs(t, err, edges.ErrEmptySet)
}

func ExampleDiagonalize() {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{2, 1, 1, 2})
	res, _ := jointdiag.Diagonalize(a, a, jointdiag.DefaultOptions())
	fmt.Println(res.Converged, res.OffAfter < 1e-24)
	// Output: true true
}
