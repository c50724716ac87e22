// SPDX-License-Identifier: MIT

package weights

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/residual"
)

// Optimize searches the probability simplex for edge weights that minimize
// the cycle residual ‖exp(ε(D_agg(w) + R·N_agg(w))) − I‖ at fixed R and ε.
//
// MAIN DESCRIPTION:
//
//	Projected gradient descent from the uniform point 1/m. The gradient is a
//	central finite difference per weight; each step w − α_k·∇ĝ is projected
//	back onto the simplex. A step that raises the residual is halved up to
//	MaxBacktrack times and dropped if it still does, so the accepted
//	residual sequence is non-increasing.
//
// Implementation:
//   - Stage 1: validate cfg and inputs; nothing is mutated on error.
//   - Stage 2: evaluate the uniform residual (m = 1 stops here).
//   - Stage 3: iterate gradient → step → project → backtrack.
//   - Stage 4: store the final weights on s.
//
// Convergence: |residual_k − residual_{k−1}| < Tol, or ≤ RelTol·residual_k
// when RelTol > 0. An iteration whose every
// backtracked step is rejected changes nothing and also ends the search.
// Reaching MaxIter returns Converged = false with the best weights so far.
//
// Errors:
//   - edges.ErrEmptySet for a nil or empty set.
//   - ErrBadConfig for malformed cfg or non-finite R.
//   - residual.ErrBadEpsilon for ε ≤ 0 or non-finite ε.
//   - residual.ErrUnknownNorm from the evaluator.
//
// Complexity: O(MaxIter·(2m + MaxBacktrack + 1)·n³).
func Optimize(s *edges.Set, r, eps float64, kind residual.NormKind, cfg Config) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("Optimize: %w", edges.ErrEmptySet)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("Optimize: %w", err)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("Optimize(R=%g): %w", r, ErrBadConfig)
	}
	if !(eps > 0) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("Optimize(eps=%g): %w", eps, residual.ErrBadEpsilon)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f := func(w []float64) (float64, error) {
		nAgg, dAgg, err := s.AggregateWith(w)
		if err != nil {
			return 0, err
		}

		return residual.CycleResidual(nAgg, dAgg, r, eps, kind)
	}

	m := s.Len()
	w := make([]float64, m)
	for i := range w {
		w[i] = 1 / float64(m)
	}
	cur, err := f(w)
	if err != nil {
		return nil, fmt.Errorf("Optimize: uniform residual: %w", err)
	}
	res := &Result{UniformResidual: cur}

	if m == 1 {
		res.Weights, res.Residual, res.Converged = w, cur, true
		if err = s.SetWeights(w); err != nil {
			return nil, fmt.Errorf("Optimize: %w", err)
		}
		return res, nil
	}

	for k := 0; k < cfg.MaxIter; k++ {
		g, err := gradient(f, w, cfg.H, cfg.Workers)
		if err != nil {
			return nil, fmt.Errorf("Optimize: iteration %d: %w", k, err)
		}

		step := cfg.Step / (1 + cfg.Decay*float64(k))
		it := Iteration{K: k, Residual: cur, GradNorm: norm2(g)}
		for b := 0; b <= cfg.MaxBacktrack; b++ {
			trial := make([]float64, m)
			for i := range w {
				trial[i] = w[i] - step*g[i]
			}
			trial = ProjectSimplex(trial)
			next, err := f(trial)
			if err != nil {
				return nil, fmt.Errorf("Optimize: iteration %d: %w", k, err)
			}
			it.Step, it.Backtracks = step, b
			if next <= cur {
				w, it.Residual, it.Accepted = trial, next, true
				break
			}
			step /= 2
		}

		delta := math.Abs(cur - it.Residual)
		cur = it.Residual
		res.History = append(res.History, it)
		res.Iterations = k + 1
		if cfg.OnIteration != nil {
			cfg.OnIteration(it)
		}
		log.Debug("weights iteration",
			"k", k, "residual", cur, "step", it.Step,
			"grad_norm", it.GradNorm, "backtracks", it.Backtracks, "accepted", it.Accepted)

		if delta < cfg.Tol || (cfg.RelTol > 0 && delta <= cfg.RelTol*cur) {
			res.Converged = true
			break
		}
	}

	res.Weights, res.Residual = w, cur
	if err = s.SetWeights(w); err != nil {
		return nil, fmt.Errorf("Optimize: %w", err)
	}
	log.Info("weights optimized",
		"m", m, "iterations", res.Iterations, "residual", res.Residual,
		"uniform_residual", res.UniformResidual, "converged", res.Converged)
	if !res.Converged {
		log.Warn("weights optimizer hit max_iter", "max_iter", cfg.MaxIter)
	}

	return res, nil
}

// validateConfig rejects non-positive or non-finite tuning values.
func validateConfig(c Config) error {
	checks := []struct {
		name string
		v    float64
		ok   bool
	}{
		{"Step", c.Step, c.Step > 0},
		{"Decay", c.Decay, c.Decay >= 0},
		{"Tol", c.Tol, c.Tol > 0},
		{"RelTol", c.RelTol, c.RelTol >= 0},
		{"H", c.H, c.H > 0},
	}
	for _, chk := range checks {
		if !chk.ok || math.IsNaN(chk.v) || math.IsInf(chk.v, 0) {
			return fmt.Errorf("%s=%g: %w", chk.name, chk.v, ErrBadConfig)
		}
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("MaxIter=%d: %w", c.MaxIter, ErrBadConfig)
	}
	if c.MaxBacktrack < 0 {
		return fmt.Errorf("MaxBacktrack=%d: %w", c.MaxBacktrack, ErrBadConfig)
	}

	return nil
}
