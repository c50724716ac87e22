// SPDX-License-Identifier: MIT

package bridge

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/matrix"
	"github.com/katalvlaran/bridgenull/residual"
)

// Sensitivity describes the residual landscape around a bridge value R.
type Sensitivity struct {
	Slope     float64 `json:"slope" yaml:"slope"`         // central first derivative
	Curvature float64 `json:"curvature" yaml:"curvature"` // central second derivative
	SE        float64 `json:"se" yaml:"se"`               // 1/√f'' when f'' > 0, +Inf otherwise
}

// Run performs the continuation sweep over the current weighted aggregate of s.
//
// MAIN DESCRIPTION:
//
//	For every ε in opts.Schedule (largest first) the bridge parameter
//	R*(ε) = argmin_R ‖exp(ε(D_agg + R·N_agg)) − I‖ is located by
//	golden-section search, and the minimal residual is recorded.
//	After the sweep residual_min ≈ C·ε^α is fitted in log–log space.
//
// Implementation:
//   - Stage 1: validate options and the set before any matrix work.
//   - Stage 2: aggregate once (fixed for the whole sweep) and take the
//     largest edge commutator max‖[Nᵢ, Dⱼ]‖₂ for the first-order bound.
//   - Stage 3: per ε pick the bracket (caller's, or automatic around the
//     previous R*), minimize, record and publish the Sample.
//   - Stage 4: apply early stops, fit α, extrapolate R* and compare the
//     last residual against the commutator floor (AlphaHat, DynamicTol).
//
// Errors:
//   - edges.ErrEmptySet for a nil or empty set.
//   - ErrBadSchedule, ErrBadBracket, ErrOptionViolation for malformed options.
//   - residual.ErrUnknownNorm for an unsupported norm.
//
// A sample that does not converge or whose bracket stays invalid is flagged
// and the sweep continues; a short trace yields Fit.Converged = false.
//
// Complexity: O(|schedule|·(MaxIter+2)·(MaxExpansions+1)·n³).
func Run(s *edges.Set, opts Options) (*Trace, error) {
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("Run: %w", edges.ErrEmptySet)
	}
	nAgg, dAgg, err := s.Aggregate()
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	diag, err := edges.CommutatorDiagnostics(s)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	return sweep(nAgg, dAgg, diag.MaxND, opts)
}

// RunAggregate is Run on an already aggregated pair (N_agg, D_agg). The
// individual edges are unknown, so the floor diagnostics stay NaN.
func RunAggregate(nAgg, dAgg matrix.Matrix, opts Options) (*Trace, error) {
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("RunAggregate: %w", err)
	}
	if err := matrix.ValidateSquarePair(nAgg, dAgg); err != nil {
		return nil, fmt.Errorf("RunAggregate: %w", err)
	}

	return sweep(nAgg, dAgg, math.NaN(), opts)
}

// AggregateCenter returns the first-order optimum R₀ = −⟨N,D⟩/‖N‖², the
// minimizer of ‖D + R·N‖_F, and the automatic bracket half-span max(|R₀|, 1).
// A zero N gives R₀ = 0.
func AggregateCenter(nAgg, dAgg matrix.Matrix) (r0, halfspan float64, err error) {
	inner, err := matrix.FrobeniusInner(nAgg, dAgg)
	if err != nil {
		return 0, 0, fmt.Errorf("AggregateCenter: %w", err)
	}
	nn, err := matrix.FrobeniusInner(nAgg, nAgg)
	if err != nil {
		return 0, 0, fmt.Errorf("AggregateCenter: %w", err)
	}
	if nn > matrix.NormZero {
		r0 = -inner / nn
	}

	return r0, math.Max(math.Abs(r0), 1), nil
}

// LocalSensitivity probes the residual at r−h, r, r+h and returns central
// differences. h ≤ 0 selects DefaultSensitivityH.
func LocalSensitivity(nAgg, dAgg matrix.Matrix, r, eps float64, kind residual.NormKind, h float64) (Sensitivity, error) {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		h = DefaultSensitivityH
	}
	var f [3]float64
	for i, x := range []float64{r - h, r, r + h} {
		v, err := residual.CycleResidual(nAgg, dAgg, x, eps, kind)
		if err != nil {
			return Sensitivity{}, fmt.Errorf("LocalSensitivity: %w", err)
		}
		f[i] = v
	}
	out := Sensitivity{
		Slope:     (f[2] - f[0]) / (2 * h),
		Curvature: (f[2] - 2*f[1] + f[0]) / (h * h),
		SE:        math.Inf(1),
	}
	if out.Curvature > 0 {
		out.SE = 1 / math.Sqrt(out.Curvature)
	}

	return out, nil
}

// sweep is the shared continuation loop of Run and RunAggregate.
func sweep(nAgg, dAgg matrix.Matrix, maxND float64, opts Options) (*Trace, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	center, halfspan, err := AggregateCenter(nAgg, dAgg)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	span := DefaultSpanFactor * halfspan

	tr := &Trace{
		Norm:          opts.Norm,
		Samples:       make([]Sample, 0, len(opts.Schedule)),
		RLast:         math.NaN(),
		RExtrapolated: math.NaN(),
		MaxND:         maxND,
		StopReason:    StopSchedule,
	}
	for k, eps := range opts.Schedule {
		lo, hi := center-span, center+span
		if opts.Bracket != nil {
			lo, hi = opts.Bracket.Lo, opts.Bracket.Hi
		}

		f := residual.Objective(nAgg, dAgg, eps, opts.Norm)
		res := Minimize(f, lo, hi, opts.SearchTol, opts.MaxIter, opts.MaxExpansions)
		smp := Sample{
			Epsilon:      eps,
			R:            res.X,
			Residual:     res.F,
			Bound:        eps * maxND,
			Iterations:   res.Iterations,
			Expansions:   res.Expansions,
			Lo:           res.Lo,
			Hi:           res.Hi,
			Converged:    res.Converged,
			BracketValid: res.BracketValid,
		}
		tr.Samples = append(tr.Samples, smp)
		if opts.OnSample != nil {
			opts.OnSample(smp)
		}
		log.Debug("bridge sample",
			"k", k, "eps", eps, "r", smp.R, "residual", smp.Residual,
			"iterations", smp.Iterations, "expansions", smp.Expansions)
		if !smp.Converged || !smp.BracketValid {
			log.Warn("bridge sample flagged",
				"k", k, "eps", eps, "converged", smp.Converged,
				"bracket_valid", smp.BracketValid, "lo", smp.Lo, "hi", smp.Hi)
		}

		if smp.BracketValid && !math.IsNaN(smp.R) && !math.IsInf(smp.R, 0) {
			center = smp.R
		}
		if opts.ResidualTol > 0 && smp.Residual <= opts.ResidualTol {
			tr.StopReason = StopResidualTol
			break
		}
		if opts.RStopTol > 0 && k > 0 {
			prev := tr.Samples[k-1].R
			if math.Abs(smp.R-prev) <= opts.RStopTol*(1+math.Abs(smp.R)) {
				tr.StopReason = StopRStable
				break
			}
		}
	}

	finish(tr, opts.ResidualTol)
	log.Info("bridge sweep done",
		"samples", len(tr.Samples), "excluded", len(tr.Excluded),
		"alpha", tr.Fit.Alpha, "alpha_se", tr.Fit.AlphaSE,
		"r_last", tr.RLast, "r_extrapolated", tr.RExtrapolated,
		"alpha_hat", tr.AlphaHat, "dynamic_tol", tr.DynamicTol,
		"floor_converged", tr.FloorConverged, "stop", tr.StopReason)
	if !tr.Fit.Converged {
		log.Warn("power-law fit not converged", "used", tr.Fit.Used)
	}

	return tr, nil
}

// finish selects the fit-eligible samples and fills Fit, Excluded, RLast,
// RExtrapolated and the floor diagnostics.
func finish(tr *Trace, residualTol float64) {
	var eps, res, rs []float64
	for i, s := range tr.Samples {
		if !s.BracketValid || !(s.Residual > 0) || math.IsInf(s.Residual, 0) {
			tr.Excluded = append(tr.Excluded, i)
			continue
		}
		eps = append(eps, s.Epsilon)
		res = append(res, s.Residual)
		rs = append(rs, s.R)
	}
	tr.Fit = FitPowerLaw(eps, res)
	if n := len(tr.Samples); n > 0 {
		tr.RLast = tr.Samples[n-1].R
	}
	if r0, ok := ExtrapolateR(eps, rs); ok {
		tr.RExtrapolated = r0
	}
	floor(tr, residualTol)
}

// floor fills AlphaHat, DynamicTol and FloorConverged.
func floor(tr *Trace, residualTol float64) {
	tr.AlphaHat = math.NaN()
	tr.DynamicTol = residualTol
	if len(tr.Samples) == 0 {
		return
	}
	if tr.MaxND > 0 && !math.IsInf(tr.MaxND, 0) {
		var ratios []float64
		for _, s := range tr.Samples {
			if s.Bound > 0 && !math.IsNaN(s.Residual) && !math.IsInf(s.Residual, 0) {
				ratios = append(ratios, s.Residual/s.Bound)
			}
		}
		if len(ratios) > 0 {
			tr.AlphaHat = median(ratios)
			last := tr.Samples[len(tr.Samples)-1]
			tr.DynamicTol = math.Max(residualTol, FloorMargin*tr.AlphaHat*last.Epsilon*tr.MaxND)
		}
	}
	tr.FloorConverged = tr.Samples[len(tr.Samples)-1].Residual <= tr.DynamicTol
}

// median of a non-empty slice; xs is reordered.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}

	return (xs[n/2-1] + xs[n/2]) / 2
}
