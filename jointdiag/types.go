// SPDX-License-Identifier: MIT
// Package jointdiag - options, results and sentinel errors.

package jointdiag

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/bridgenull/matrix"
)

// ErrBadOptions indicates a negative or non-finite Tol or a non-positive MaxIter.
var ErrBadOptions = errors.New("jointdiag: invalid options")

// Defaults.
const (
	DefaultTol     = 1e-12
	DefaultMaxIter = 100
)

// Options configures Diagonalize.
//
//   - Tol      - a sweep that lowers the energy by less than Tol ends the run.
//   - Relative - compare the reduction to Tol·(energy before the sweep) instead.
//   - MaxIter  - sweep cap; reaching it returns Converged = false.
//   - OnSweep  - called after every sweep.
//   - Logger   - structured logger; nil discards.
type Options struct {
	Tol      float64
	Relative bool
	MaxIter  int
	OnSweep  func(Sweep)
	Logger   *slog.Logger
}

// DefaultOptions returns absolute Tol 1e-12 and MaxIter 100.
func DefaultOptions() Options {
	return Options{Tol: DefaultTol, MaxIter: DefaultMaxIter}
}

// Sweep summarizes one pass over all index pairs p < q.
type Sweep struct {
	K         int     `json:"k" yaml:"k"`
	OffN      float64 `json:"off_n" yaml:"off_n"`
	OffD      float64 `json:"off_d" yaml:"off_d"`
	Energy    float64 `json:"energy" yaml:"energy"`
	Reduction float64 `json:"reduction" yaml:"reduction"`
	MaxGain   float64 `json:"max_gain" yaml:"max_gain"`
	Rotations int     `json:"rotations" yaml:"rotations"`
}

// Result holds the accumulated orthogonal transform and the energy bookkeeping.
// N and D are SᵀNS and SᵀDS.
type Result struct {
	S               *matrix.Dense `json:"-" yaml:"-"`
	N               *matrix.Dense `json:"-" yaml:"-"`
	D               *matrix.Dense `json:"-" yaml:"-"`
	Converged       bool          `json:"converged" yaml:"converged"`
	Iterations      int           `json:"iterations" yaml:"iterations"`
	OffBefore       float64       `json:"off_before" yaml:"off_before"`
	OffAfter        float64       `json:"off_after" yaml:"off_after"`
	OffNBefore      float64       `json:"off_n_before" yaml:"off_n_before"`
	OffDBefore      float64       `json:"off_d_before" yaml:"off_d_before"`
	OffNAfter       float64       `json:"off_n_after" yaml:"off_n_after"`
	OffDAfter       float64       `json:"off_d_after" yaml:"off_d_after"`
	ReductionFactor float64       `json:"reduction_factor" yaml:"reduction_factor"`
	History         []Sweep       `json:"history,omitempty" yaml:"history,omitempty"`
}
