// SPDX-License-Identifier: MIT

package proportion_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/matrix"
	"github.com/katalvlaran/bridgenull/proportion"
)

func mat(t *testing.T, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(2, 2, data)
	require.NoError(t, err)

	return m
}

func TestMetrics(t *testing.T) {
	tests := []struct {
		name    string
		n, d    []float64
		r, rel  float64
		defined bool
	}{
		{"exact multiple", []float64{2, 4, 6, 8}, []float64{1, 2, 3, 4}, 2, 0, true},
		{"negative multiple", []float64{-3, 0, 0, -3}, []float64{1, 0, 0, 1}, -3, 0, true},
		{"orthogonal", []float64{0, 1, 0, 0}, []float64{1, 0, 0, 0}, 0, 1, true},
		{"zero N", []float64{0, 0, 0, 0}, []float64{1, 2, 3, 4}, 0, 0, true},
		{"zero D", []float64{1, 0, 0, 1}, []float64{0, 0, 0, 0}, math.NaN(), 1, false},
		{"both zero", []float64{0, 0, 0, 0}, []float64{0, 0, 0, 0}, math.NaN(), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := proportion.Metrics(mat(t, tc.n...), mat(t, tc.d...))
			require.NoError(t, err)
			assert.Equal(t, tc.defined, got.Defined)
			if math.IsNaN(tc.r) {
				assert.True(t, math.IsNaN(got.R))
			} else {
				assert.InDelta(t, tc.r, got.R, 1e-15)
			}
			assert.InDelta(t, tc.rel, got.RelRes, 1e-15)
		})
	}
}

func TestMetrics_PartialFit(t *testing.T) {
	// N = D + E with E ⟂ D: R = 1, relres = ‖E‖/‖N‖.
	got, err := proportion.Metrics(mat(t, 1, 1, 0, 0), mat(t, 1, 0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1, got.R, 1e-15)
	assert.InDelta(t, 1/math.Sqrt2, got.RelRes, 1e-15)
	assert.False(t, got.IsExactNull(1e-9))
	assert.True(t, got.IsExactNull(0.8))
}

func TestMetrics_Errors(t *testing.T) {
	a := mat(t, 1, 2, 3, 4)
	b, _ := matrix.NewIdentity(3)
	_, err := proportion.Metrics(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = proportion.Metrics(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestIdenticalCopiesAreExactNull(t *testing.T) {
	base, err := edges.Generate(3, 4, 42)
	require.NoError(t, err)
	e, err := base.Edge(0)
	require.NoError(t, err)
	copies, err := edges.IdenticalCopies(e, 5)
	require.NoError(t, err)
	nAgg, _, err := copies.Aggregate()
	require.NoError(t, err)

	res, err := proportion.Metrics(e.N(), nAgg)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.RelRes, 1e-9)
	assert.True(t, res.IsExactNull(proportion.DefaultNullTol))

	rep, err := proportion.EdgeReport(copies)
	require.NoError(t, err)
	require.Len(t, rep, 5)
	for i, r := range rep {
		assert.Equal(t, i, r.Index)
		assert.LessOrEqual(t, r.Aggregate.RelRes, 1e-9)
		assert.True(t, r.Self.Defined)
	}
}

func TestDistinctEdgesAreNotProportional(t *testing.T) {
	s, err := edges.Generate(3, 4, 42)
	require.NoError(t, err)

	table, err := proportion.PairwiseN(s)
	require.NoError(t, err)
	require.Len(t, table, 4)
	for i := range table {
		require.Len(t, table[i], 4)
		for j := range table[i] {
			if i == j {
				assert.InDelta(t, 0, table[i][j], 1e-12)
				continue
			}
			assert.Greater(t, table[i][j], 0.1, "N%d vs N%d", i, j)
		}
	}

	rep, err := proportion.EdgeReport(s)
	require.NoError(t, err)
	for _, r := range rep {
		assert.False(t, r.Self.IsExactNull(proportion.DefaultNullTol))
	}
}

func TestReports_Errors(t *testing.T) {
	_, err := proportion.EdgeReport(nil)
	require.ErrorIs(t, err, edges.ErrEmptySet)
	_, err = proportion.PairwiseN(nil)
	require.ErrorIs(t, err, edges.ErrEmptySet)
}

func ExampleMetrics() {
	n, _ := matrix.NewDenseFrom(2, 2, []float64{2, 0, 0, 4})
	d, _ := matrix.NewDenseFrom(2, 2, []float64{1, 0, 0, 2})
	res, _ := proportion.Metrics(n, d)
	fmt.Println(res.R, res.RelRes, res.IsExactNull(proportion.DefaultNullTol))

	zero, _ := matrix.NewZeros(2, 2)
	res, _ = proportion.Metrics(n, zero)
	fmt.Println(res.R, res.Defined)
	// Output:
	// 2 0 true
	// NaN false
}
