// SPDX-License-Identifier: MIT
// Package weights - configuration, results and sentinel errors.

package weights

import (
	"errors"
	"log/slog"
)

// ErrBadConfig indicates a malformed Config field or a non-finite bridge parameter.
var ErrBadConfig = errors.New("weights: invalid optimizer configuration")

// Defaults.
const (
	DefaultStep         = 0.1   // α₀
	DefaultDecay        = 0.01  // α_k = α₀/(1 + decay·k)
	DefaultTol          = 1e-10 // stop once |Δresidual| < tol
	DefaultMaxIter      = 200
	DefaultH            = 1e-5 // finite-difference probe
	DefaultMaxBacktrack = 8
)

// Config tunes the projected finite-difference gradient descent.
//
//   - Step, Decay   - step schedule α_k = Step/(1 + Decay·k).
//   - Tol           - convergence threshold on |residual_k − residual_{k−1}|.
//   - RelTol        - > 0 also stops once that change is ≤ RelTol·residual_k.
//   - MaxIter       - iteration cap; reaching it leaves Converged = false.
//
// The default Tol is absolute and tight: on random sets of residual size
// O(ε) the descent keeps making small progress and usually stops at
// MaxIter with Converged = false. Set RelTol (e.g. 1e-6) for a scale-free stop.
//   - H             - central-difference probe width.
//   - MaxBacktrack  - step halvings tried when a trial step raises the residual.
//   - Workers       - > 1 evaluates gradient components in parallel.
//   - OnIteration   - called after every accepted or rejected iteration.
//   - Logger        - structured logger; nil discards.
type Config struct {
	Step         float64
	Decay        float64
	Tol          float64
	RelTol       float64
	MaxIter      int
	H            float64
	MaxBacktrack int
	Workers      int
	OnIteration  func(Iteration)
	Logger       *slog.Logger
}

// DefaultConfig returns the defaults listed above with sequential gradients.
func DefaultConfig() Config {
	return Config{
		Step:         DefaultStep,
		Decay:        DefaultDecay,
		Tol:          DefaultTol,
		MaxIter:      DefaultMaxIter,
		H:            DefaultH,
		MaxBacktrack: DefaultMaxBacktrack,
	}
}

// Iteration is one optimizer step as seen by OnIteration.
type Iteration struct {
	K          int     `json:"k" yaml:"k"`
	Residual   float64 `json:"residual" yaml:"residual"`
	Step       float64 `json:"step" yaml:"step"`
	GradNorm   float64 `json:"grad_norm" yaml:"grad_norm"`
	Backtracks int     `json:"backtracks" yaml:"backtracks"`
	Accepted   bool    `json:"accepted" yaml:"accepted"`
}

// Result is the outcome of Optimize. Residual ≤ UniformResidual always holds.
type Result struct {
	Weights         []float64   `json:"weights" yaml:"weights"`
	Residual        float64     `json:"residual" yaml:"residual"`
	UniformResidual float64     `json:"uniform_residual" yaml:"uniform_residual"`
	Converged       bool        `json:"converged" yaml:"converged"`
	Iterations      int         `json:"iterations" yaml:"iterations"`
	History         []Iteration `json:"history,omitempty" yaml:"history,omitempty"`
}

// Improvement returns 1 − Residual/UniformResidual, or 0 when the uniform residual is 0.
func (r *Result) Improvement() float64 {
	if r.UniformResidual == 0 {
		return 0
	}

	return 1 - r.Residual/r.UniformResidual
}
