// SPDX-License-Identifier: MIT

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/metrics"
	"github.com/katalvlaran/bridgenull/weights"
)

func TestCollector_Hooks(t *testing.T) {
	col, err := metrics.New(nil)
	require.NoError(t, err)

	col.OnSample(bridge.Sample{Epsilon: 0.1, R: -0.5, Residual: 0.02, Iterations: 50, Expansions: 2, Converged: true, BracketValid: true})
	col.OnSample(bridge.Sample{Epsilon: 0.05, R: -0.4, Residual: 0.01, Iterations: 200, Converged: false, BracketValid: false})
	assert.Equal(t, 2.0, testutil.ToFloat64(col.Samples))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.InvalidBrackets))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.NotConverged))
	assert.Equal(t, 2.0, testutil.ToFloat64(col.Expansions))
	assert.Equal(t, 0.01, testutil.ToFloat64(col.LastResidual))
	assert.Equal(t, 0.05, testutil.ToFloat64(col.LastEpsilon))
	assert.Equal(t, -0.4, testutil.ToFloat64(col.LastR))

	col.OnIteration(weights.Iteration{Residual: 0.3, Backtracks: 3})
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Iterations))
	assert.Equal(t, 3.0, testutil.ToFloat64(col.Backtracks))
	assert.Equal(t, 0.3, testutil.ToFloat64(col.WeightsResidual))

	col.OnSweep(jointdiag.Sweep{Energy: 1e-3, Rotations: 6})
	assert.Equal(t, 1.0, testutil.ToFloat64(col.Sweeps))
	assert.Equal(t, 6.0, testutil.ToFloat64(col.Rotations))
	assert.Equal(t, 1e-3, testutil.ToFloat64(col.OffDiagEnergy))
}

func TestCollector_Registry(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := metrics.New(reg)
	require.NoError(t, err)

	s, err := edges.Generate(3, 4, 42)
	require.NoError(t, err)
	opts := bridge.DefaultOptions()
	opts.OnSample = col.OnSample
	tr, err := bridge.Run(s, opts)
	require.NoError(t, err)

	assert.Equal(t, float64(len(tr.Samples)), testutil.ToFloat64(col.Samples))
	n, err := testutil.GatherAndCount(reg, "bridgenull_bridge_samples_total", "bridgenull_bridge_search_steps")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	totals, err := metrics.Totals(reg)
	require.NoError(t, err)
	assert.Equal(t, float64(len(tr.Samples)), totals["bridgenull_bridge_samples_total"])
	assert.Equal(t, float64(len(tr.Samples)), totals["bridgenull_bridge_search_steps"])
	assert.Equal(t, tr.RLast, totals["bridgenull_bridge_last_r"])
	assert.Zero(t, totals["bridgenull_weights_iterations_total"])

	// a second collector on the same registry collides
	_, err = metrics.New(reg)
	require.Error(t, err)
}
