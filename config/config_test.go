// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/config"
	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/residual"
	"github.com/katalvlaran/bridgenull/weights"
)

const sample = `
seed: 7
runs: 3
dimension: 4
edges: 5
commuting: true
prepare:
  scale_uniform: true
bridge:
  norm: spectral
  schedule:
    explicit: [0.1, 0.05, 0.01]
  bracket: {lo: -5, hi: 5}
  max_expansions: 0
  r_stop_tol: 1e-6
weights:
  epsilon: 0.05
  workers: 4
jointdiag:
  enabled: true
  relative: true
  tol: 1e-3
`

func TestLoad(t *testing.T) {
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, 4, c.Dimension)
	assert.True(t, c.Commuting)
	assert.Equal(t, config.PrepareConfig{ScaleUniform: true}, c.Prepare)

	opts, err := c.BridgeOptions()
	require.NoError(t, err)
	assert.Equal(t, bridge.Schedule{0.1, 0.05, 0.01}, opts.Schedule)
	assert.Equal(t, residual.Spectral, opts.Norm)
	require.NotNil(t, opts.Bracket)
	assert.Equal(t, bridge.Bracket{Lo: -5, Hi: 5}, *opts.Bracket)
	assert.Zero(t, opts.MaxExpansions)
	assert.Equal(t, 1e-6, opts.RStopTol)
	assert.Equal(t, bridge.DefaultSearchTol, opts.SearchTol, "unset keys keep defaults")

	wc := c.WeightsConfig()
	assert.Equal(t, 4, wc.Workers)
	assert.Equal(t, weights.DefaultStep, wc.Step)
	assert.Equal(t, 0.05, c.Weights.Epsilon)

	jo := c.JointDiagOptions()
	assert.Equal(t, jointdiag.Options{Tol: 1e-3, MaxIter: jointdiag.DefaultMaxIter, Relative: true}, jo)

	seeds := c.Seeds()
	assert.Equal(t, edges.SeedStream(7, 3), seeds)

	s, err := c.Generator()(seeds[0])
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 4, s.Dim())
	d, err := edges.CommutatorDiagnostics(s)
	require.NoError(t, err)
	assert.True(t, d.EffectivelyCommuting(1e-9))
}

func TestLoad_EmptyDocumentGivesDefaults(t *testing.T) {
	c, err := config.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	opts, err := c.BridgeOptions()
	require.NoError(t, err)
	def := bridge.DefaultOptions()
	assert.Equal(t, def.Schedule, opts.Schedule)
	assert.Equal(t, def.Norm, opts.Norm)
	assert.Nil(t, opts.Bracket)
	assert.Equal(t, []int64{42}, c.Seeds())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "dimensions: 3\n"},
		{"zero dimension", "dimension: 0\n"},
		{"bad norm", "bridge: {norm: nuclear}\n"},
		{"increasing schedule", "bridge: {schedule: {explicit: [0.01, 0.1]}}\n"},
		{"bad factor", "bridge: {schedule: {start: 0.1, target: 0.01, factor: 2}}\n"},
		{"bracket order", "bridge: {bracket: {lo: 1, hi: -1}}\n"},
		{"search tol", "bridge: {search_tol: 0}\n"},
		{"weights epsilon", "weights: {epsilon: 0}\n"},
		{"weights step", "weights: {step: -1}\n"},
		{"weights rel_tol", "weights: {rel_tol: -1}\n"},
		{"jointdiag iter", "jointdiag: {enabled: true, max_iter: 0}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.name != "unknown key" {
				require.ErrorIs(t, err, config.ErrBadConfig)
			}
		})
	}

	// disabled sections are not validated
	_, err := config.Load(strings.NewReader("weights: {enabled: false, epsilon: 0}\n"))
	require.NoError(t, err)
}

func TestLoadFile_RoundTrip(t *testing.T) {
	c, err := config.Load(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	back, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
