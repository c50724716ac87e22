// SPDX-License-Identifier: MIT
// Package bridge - options, samples, traces and sentinel errors.

package bridge

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/bridgenull/residual"
)

// Sentinel errors.
var (
	// ErrBadSchedule indicates an empty ε schedule, a non-positive or non-finite
	// entry, or entries that are not strictly decreasing.
	ErrBadSchedule = errors.New("bridge: epsilon schedule must be strictly decreasing and > 0")

	// ErrBadBracket indicates a caller bracket with Lo >= Hi or non-finite bounds.
	ErrBadBracket = errors.New("bridge: bracket must satisfy lo < hi with finite bounds")

	// ErrOptionViolation indicates a malformed Options field (tolerances, caps, workers).
	ErrOptionViolation = errors.New("bridge: invalid option value")

	// ErrNoSeeds is returned by RunSeeds for an empty seed list or a nil generator.
	ErrNoSeeds = errors.New("bridge: no seeds to run")
)

// Defaults.
const (
	DefaultSearchTol     = 1e-10 // relative width at which golden-section stops
	DefaultMaxIter       = 200   // golden-section steps per ε
	DefaultMaxExpansions = 12    // bracket doublings before a sample is flagged
	DefaultSpanFactor    = 3.0   // auto bracket = center ± SpanFactor·halfspan
	DefaultSensitivityH  = 1e-3  // finite-difference step of LocalSensitivity
	FloorMargin          = 1.10  // dynamic tolerance = max(ResidualTol, FloorMargin·floor)
	expansionFactor      = 2.0
)

// Stop reasons reported in Trace.StopReason.
const (
	StopSchedule    = "schedule"     // every ε in the schedule was processed
	StopRStable     = "r-stable"     // successive R* agreed within RStopTol
	StopResidualTol = "residual-tol" // residual_min fell to ResidualTol
)

// Bracket is a closed search interval [Lo, Hi] for the bridge parameter.
type Bracket struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Options configures a continuation run.
//
// Fields:
//   - Schedule      - strictly decreasing ε values (Geometric or Explicit).
//   - Norm          - residual norm (Frobenius or Spectral).
//   - Bracket       - caller search interval used at every ε; nil selects the
//     automatic bracket centered on AggregateCenter and then on the previous R*.
//   - SearchTol     - golden-section stops once hi−lo ≤ SearchTol·(1+|mid|).
//   - MaxIter       - golden-section step cap; hitting it flags the sample.
//   - MaxExpansions - bracket doublings tried before the sample is flagged invalid
//     (0 disables expansion).
//   - RStopTol      - > 0 stops once |R*ₖ − R*ₖ₋₁| ≤ RStopTol·(1+|R*ₖ|).
//   - ResidualTol   - > 0 stops once residual_min ≤ ResidualTol.
//   - Workers       - parallel runs in RunSeeds (≤ 0 means one per seed).
//   - OnSample      - called after every ε sample; must be goroutine-safe under RunSeeds.
//   - Logger        - structured logger; nil discards.
type Options struct {
	Schedule      Schedule
	Norm          residual.NormKind
	Bracket       *Bracket
	SearchTol     float64
	MaxIter       int
	MaxExpansions int
	RStopTol      float64
	ResidualTol   float64
	Workers       int
	OnSample      func(Sample)
	Logger        *slog.Logger
}

// Sample is one point of the continuation trace.
type Sample struct {
	Epsilon      float64 `json:"epsilon" yaml:"epsilon"`
	R            float64 `json:"r" yaml:"r"`
	Residual     float64 `json:"residual" yaml:"residual"`
	Bound        float64 `json:"bound" yaml:"bound"` // ε·max‖[Nᵢ, Dⱼ]‖₂, NaN when unknown
	Iterations   int     `json:"iterations" yaml:"iterations"`
	Expansions   int     `json:"expansions" yaml:"expansions"`
	Lo           float64 `json:"lo" yaml:"lo"`
	Hi           float64 `json:"hi" yaml:"hi"`
	Converged    bool    `json:"converged" yaml:"converged"`
	BracketValid bool    `json:"bracket_valid" yaml:"bracket_valid"`
}

// Fit is the least-squares power law residual ≈ C·ε^α in log–log space.
// When Converged is false, Alpha, AlphaSE, LogC and R2 are NaN.
type Fit struct {
	Alpha     float64 `json:"alpha" yaml:"alpha"`
	AlphaSE   float64 `json:"alpha_se" yaml:"alpha_se"`
	LogC      float64 `json:"log_c" yaml:"log_c"`
	R2        float64 `json:"r2" yaml:"r2"`
	Used      int     `json:"used" yaml:"used"`
	Converged bool    `json:"converged" yaml:"converged"`
}

// Trace is the read-only result of a continuation run.
//   - Samples       - one entry per processed ε, in schedule order.
//   - Excluded      - indices of samples left out of the fit (invalid bracket,
//     non-finite or zero residual).
//   - RLast         - R* at the smallest processed ε.
//   - RExtrapolated - intercept at ε = 0 of the least-squares line R* ≈ a + b·ε
//     over the fitted samples; NaN when fewer than 2 are usable.
//   - MaxND         - max ‖[Nᵢ, Dⱼ]‖₂ over the edges; NaN for RunAggregate.
//   - AlphaHat      - floor coefficient: median over samples of residual/Bound.
//     NaN when MaxND is unknown or zero (no commutator floor).
//   - DynamicTol    - max(ResidualTol, FloorMargin·AlphaHat·ε_last·MaxND).
//   - FloorConverged - the last residual is ≤ DynamicTol: the sweep reached
//     the commutator floor (or ResidualTol).
type Trace struct {
	Norm           residual.NormKind `json:"norm" yaml:"norm"`
	Samples        []Sample          `json:"samples" yaml:"samples"`
	Excluded       []int             `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Fit            Fit               `json:"fit" yaml:"fit"`
	RLast          float64           `json:"r_last" yaml:"r_last"`
	RExtrapolated  float64           `json:"r_extrapolated" yaml:"r_extrapolated"`
	MaxND          float64           `json:"max_nd" yaml:"max_nd"`
	AlphaHat       float64           `json:"alpha_hat" yaml:"alpha_hat"`
	DynamicTol     float64           `json:"dynamic_tol" yaml:"dynamic_tol"`
	FloorConverged bool              `json:"floor_converged" yaml:"floor_converged"`
	StopReason     string            `json:"stop_reason" yaml:"stop_reason"`
}

// Flagged reports the indices of samples that hit an invalid bracket or did not converge.
func (t *Trace) Flagged() []int {
	var out []int
	for i, s := range t.Samples {
		if !s.BracketValid || !s.Converged {
			out = append(out, i)
		}
	}

	return out
}

// DefaultOptions returns an Options with:
//   - the geometric schedule 1e-1 → 1e-4 with factor 0.5,
//   - Frobenius norm, automatic bracket,
//   - SearchTol 1e-10, MaxIter 200, MaxExpansions 12,
//   - no early stopping and no hooks.
func DefaultOptions() Options {
	sched, _ := Geometric(1e-1, 1e-4, 0.5) // constant arguments, cannot fail

	return Options{
		Schedule:      sched,
		Norm:          residual.Frobenius,
		SearchTol:     DefaultSearchTol,
		MaxIter:       DefaultMaxIter,
		MaxExpansions: DefaultMaxExpansions,
	}
}
