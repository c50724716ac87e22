// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/residual"
	"github.com/katalvlaran/bridgenull/weights"
)

// ErrBadConfig indicates a configuration value outside its valid range.
var ErrBadConfig = errors.New("config: invalid configuration")

// Config is the YAML run description.
type Config struct {
	Seed      int64           `yaml:"seed"`
	Runs      int             `yaml:"runs"`
	Dimension int             `yaml:"dimension"`
	Edges     int             `yaml:"edges"`
	Commuting bool            `yaml:"commuting"`
	Prepare   PrepareConfig   `yaml:"prepare"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Weights   WeightsConfig   `yaml:"weights"`
	JointDiag JointDiagConfig `yaml:"jointdiag"`
}

// PrepareConfig selects the edge-set conditioning applied before any analysis.
type PrepareConfig struct {
	RegularizeD  bool `yaml:"regularize_d"`
	ScaleUniform bool `yaml:"scale_uniform"`
}

// ScheduleConfig selects a geometric schedule, or the Explicit list when it is non-empty.
type ScheduleConfig struct {
	Start    float64   `yaml:"start"`
	Target   float64   `yaml:"target"`
	Factor   float64   `yaml:"factor"`
	Explicit []float64 `yaml:"explicit,omitempty"`
}

// BridgeConfig mirrors bridge.Options.
type BridgeConfig struct {
	Schedule      ScheduleConfig  `yaml:"schedule"`
	Norm          string          `yaml:"norm"`
	Bracket       *bridge.Bracket `yaml:"bracket,omitempty"`
	SearchTol     float64         `yaml:"search_tol"`
	MaxIter       int             `yaml:"max_iter"`
	MaxExpansions int             `yaml:"max_expansions"`
	RStopTol      float64         `yaml:"r_stop_tol"`
	ResidualTol   float64         `yaml:"residual_tol"`
	Workers       int             `yaml:"workers"`
}

// WeightsConfig mirrors weights.Config plus the ε at which weights are tuned.
type WeightsConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Epsilon      float64 `yaml:"epsilon"`
	Step         float64 `yaml:"step"`
	Decay        float64 `yaml:"decay"`
	Tol          float64 `yaml:"tol"`
	RelTol       float64 `yaml:"rel_tol"`
	MaxIter      int     `yaml:"max_iter"`
	H            float64 `yaml:"h"`
	MaxBacktrack int     `yaml:"max_backtrack"`
	Workers      int     `yaml:"workers"`
}

// JointDiagConfig mirrors jointdiag.Options.
type JointDiagConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Tol      float64 `yaml:"tol"`
	MaxIter  int     `yaml:"max_iter"`
	Relative bool    `yaml:"relative"`
}

// Default returns the reference run: seed 42, n = 3, m = 4, the default
// continuation schedule, weight tuning at ε = 0.01 and joint diagonalization off.
func Default() *Config {
	bo := bridge.DefaultOptions()
	wc := weights.DefaultConfig()
	jo := jointdiag.DefaultOptions()

	return &Config{
		Seed:      42,
		Runs:      1,
		Dimension: 3,
		Edges:     4,
		Bridge: BridgeConfig{
			Schedule:      ScheduleConfig{Start: 1e-1, Target: 1e-4, Factor: 0.5},
			Norm:          bo.Norm.String(),
			SearchTol:     bo.SearchTol,
			MaxIter:       bo.MaxIter,
			MaxExpansions: bo.MaxExpansions,
		},
		Weights: WeightsConfig{
			Enabled:      true,
			Epsilon:      1e-2,
			Step:         wc.Step,
			Decay:        wc.Decay,
			Tol:          wc.Tol,
			RelTol:       1e-6,
			MaxIter:      wc.MaxIter,
			H:            wc.H,
			MaxBacktrack: wc.MaxBacktrack,
		},
		JointDiag: JointDiagConfig{Tol: jo.Tol, MaxIter: jo.MaxIter},
	}
}

// Load decodes a YAML document over Default and validates the result.
// Unknown keys are rejected; an empty document yields the defaults.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return c, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Write encodes c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("Config.Write: %w", err)
	}

	return enc.Close()
}

// Validate checks every section; the first problem is returned.
func (c *Config) Validate() error {
	if c.Dimension < 1 || c.Edges < 1 || c.Runs < 1 {
		return fmt.Errorf("dimension=%d edges=%d runs=%d: %w", c.Dimension, c.Edges, c.Runs, ErrBadConfig)
	}
	if _, err := c.BridgeOptions(); err != nil {
		return err
	}
	w := c.Weights
	if w.Enabled {
		if !(w.Epsilon > 0) || math.IsInf(w.Epsilon, 0) {
			return fmt.Errorf("weights.epsilon=%g: %w", w.Epsilon, ErrBadConfig)
		}
		if !(w.Step > 0) || w.Decay < 0 || !(w.Tol > 0) || !(w.RelTol >= 0) || !(w.H > 0) || w.MaxIter < 1 || w.MaxBacktrack < 0 {
			return fmt.Errorf("weights: %w", ErrBadConfig)
		}
	}
	j := c.JointDiag
	if j.Enabled && (!(j.Tol >= 0) || math.IsInf(j.Tol, 0) || j.MaxIter < 1) {
		return fmt.Errorf("jointdiag: tol=%g max_iter=%d: %w", j.Tol, j.MaxIter, ErrBadConfig)
	}

	return nil
}

// Schedule builds the ε schedule: Explicit when listed, Geometric otherwise.
func (c *Config) Schedule() (bridge.Schedule, error) {
	s := c.Bridge.Schedule
	if len(s.Explicit) > 0 {
		out, err := bridge.Explicit(s.Explicit)
		if err != nil {
			return nil, fmt.Errorf("bridge.schedule: %w: %w", ErrBadConfig, err)
		}
		return out, nil
	}
	out, err := bridge.Geometric(s.Start, s.Target, s.Factor)
	if err != nil {
		return nil, fmt.Errorf("bridge.schedule: %w: %w", ErrBadConfig, err)
	}

	return out, nil
}

// Norm parses bridge.norm.
func (c *Config) Norm() (residual.NormKind, error) {
	k, err := residual.ParseNormKind(c.Bridge.Norm)
	if err != nil {
		return 0, fmt.Errorf("bridge.norm: %w: %w", ErrBadConfig, err)
	}

	return k, nil
}

// BridgeOptions converts the bridge section. Hooks and Logger are left for the caller.
func (c *Config) BridgeOptions() (bridge.Options, error) {
	sched, err := c.Schedule()
	if err != nil {
		return bridge.Options{}, err
	}
	kind, err := c.Norm()
	if err != nil {
		return bridge.Options{}, err
	}
	b := c.Bridge
	if br := b.Bracket; br != nil && !(br.Lo < br.Hi) {
		return bridge.Options{}, fmt.Errorf("bridge.bracket [%g, %g]: %w: %w", br.Lo, br.Hi, ErrBadConfig, bridge.ErrBadBracket)
	}
	if !(b.SearchTol > 0) || b.MaxIter < 1 || b.MaxExpansions < 0 || b.RStopTol < 0 || b.ResidualTol < 0 {
		return bridge.Options{}, fmt.Errorf("bridge: %w", ErrBadConfig)
	}
	opts := bridge.Options{
		Schedule:      sched,
		Norm:          kind,
		SearchTol:     b.SearchTol,
		MaxIter:       b.MaxIter,
		MaxExpansions: b.MaxExpansions,
		RStopTol:      b.RStopTol,
		ResidualTol:   b.ResidualTol,
		Workers:       b.Workers,
	}
	if b.Bracket != nil {
		br := *b.Bracket
		opts.Bracket = &br
	}

	return opts, nil
}

// WeightsConfig converts the weights section.
func (c *Config) WeightsConfig() weights.Config {
	w := c.Weights

	return weights.Config{
		Step:         w.Step,
		Decay:        w.Decay,
		Tol:          w.Tol,
		RelTol:       w.RelTol,
		MaxIter:      w.MaxIter,
		H:            w.H,
		MaxBacktrack: w.MaxBacktrack,
		Workers:      w.Workers,
	}
}

// JointDiagOptions converts the jointdiag section.
func (c *Config) JointDiagOptions() jointdiag.Options {
	return jointdiag.Options{
		Tol:      c.JointDiag.Tol,
		MaxIter:  c.JointDiag.MaxIter,
		Relative: c.JointDiag.Relative,
	}
}

// Seeds returns the per-run seeds: the base seed for a single run,
// edges.SeedStream(seed, runs) otherwise.
func (c *Config) Seeds() []int64 {
	if c.Runs <= 1 {
		return []int64{c.Seed}
	}

	return edges.SeedStream(c.Seed, c.Runs)
}

// Generator returns the edge-set generator for the configured shape.
func (c *Config) Generator() bridge.Generator {
	n, m := c.Dimension, c.Edges
	if c.Commuting {
		return func(seed int64) (*edges.Set, error) { return edges.GenerateCommuting(n, m, seed) }
	}

	return func(seed int64) (*edges.Set, error) { return edges.Generate(n, m, seed) }
}
