// SPDX-License-Identifier: MIT

package proportion

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/matrix"
)

// DefaultNullTol is the relative-residual threshold used by the demo and
// reports to call a pair exactly proportional.
const DefaultNullTol = 1e-9

// Result is the outcome of a proportionality test N ≈ R·D.
// When D = 0 no scalar exists: R is NaN and Defined is false.
type Result struct {
	R       float64 `json:"r" yaml:"r"`
	RelRes  float64 `json:"rel_residual" yaml:"rel_residual"`
	Defined bool    `json:"defined" yaml:"defined"`
}

// IsExactNull reports whether N is proportional to D within tol.
// An undefined Result is never an exact null.
func (r Result) IsExactNull(tol float64) bool {
	return r.Defined && r.RelRes <= tol
}

// Metrics returns the least-squares proportionality constant and its
// relative residual:
//
//	R      = ⟨N, D⟩_F / ‖D‖²_F
//	relres = ‖N − R·D‖_F / ‖N‖_F
//
// Degenerate cases:
//   - ‖D‖ = 0: R = NaN, Defined = false; relres = 1 for N ≠ 0, 0 for N = 0.
//   - ‖N‖ = 0: relres = 0 whatever D is.
//
// Errors: matrix shape sentinels for nil or mismatched inputs.
func Metrics(n, d matrix.Matrix) (Result, error) {
	if err := matrix.ValidateBinarySameShape(n, d); err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}
	nd, err := matrix.FrobeniusInner(n, d)
	if err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}
	dd, err := matrix.FrobeniusInner(d, d)
	if err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}
	nNorm, err := matrix.FrobeniusNorm(n)
	if err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}

	if dd == 0 {
		res := Result{R: math.NaN()}
		if nNorm > 0 {
			res.RelRes = 1
		}
		return res, nil
	}
	res := Result{R: nd / dd, Defined: true}
	if nNorm == 0 {
		return res, nil
	}
	diff, err := matrix.AddScaled(n, -res.R, d)
	if err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}
	dNorm, err := matrix.FrobeniusNorm(diff)
	if err != nil {
		return Result{}, fmt.Errorf("Metrics: %w", err)
	}
	res.RelRes = dNorm / nNorm

	return res, nil
}

// EdgeResult pairs the per-edge tests of one edge.
//   - Self      - Nᵢ against Dᵢ.
//   - Aggregate - Nᵢ against the weighted N_agg.
type EdgeResult struct {
	Index     int    `json:"index" yaml:"index"`
	Self      Result `json:"self" yaml:"self"`
	Aggregate Result `json:"aggregate" yaml:"aggregate"`
}

// EdgeReport runs Metrics(Nᵢ, Dᵢ) and Metrics(Nᵢ, N_agg) for every edge of s.
func EdgeReport(s *edges.Set) ([]EdgeResult, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("EdgeReport: %w", edges.ErrEmptySet)
	}
	nAgg, _, err := s.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("EdgeReport: %w", err)
	}
	out := make([]EdgeResult, s.Len())
	for i, e := range s.Edges() {
		n := e.N()
		out[i].Index = i
		if out[i].Self, err = Metrics(n, e.D()); err != nil {
			return nil, fmt.Errorf("EdgeReport: edge %d: %w", i, err)
		}
		if out[i].Aggregate, err = Metrics(n, nAgg); err != nil {
			return nil, fmt.Errorf("EdgeReport: edge %d: %w", i, err)
		}
	}

	return out, nil
}

// PairwiseN returns the m×m table T[i][j] = Metrics(Nᵢ, Nⱼ).RelRes.
// The diagonal is 0 for every non-zero Nᵢ.
func PairwiseN(s *edges.Set) ([][]float64, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("PairwiseN: %w", edges.ErrEmptySet)
	}
	es := s.Edges()
	ns := make([]*matrix.Dense, len(es))
	for i, e := range es {
		ns[i] = e.N()
	}
	out := make([][]float64, len(ns))
	for i := range ns {
		out[i] = make([]float64, len(ns))
		for j := range ns {
			r, err := Metrics(ns[i], ns[j])
			if err != nil {
				return nil, fmt.Errorf("PairwiseN(%d, %d): %w", i, j, err)
			}
			out[i][j] = r.RelRes
		}
	}

	return out, nil
}
