// SPDX-License-Identifier: MIT

package residual

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/matrix"
)

// NormKind selects the matrix norm applied to U − I.
type NormKind int

const (
	// Frobenius is ‖·‖_F.
	Frobenius NormKind = iota
	// Spectral is ‖·‖₂, the largest singular value.
	Spectral
)

// Sentinel errors.
var (
	// ErrBadEpsilon is returned for ε < 0 or a non-finite ε.
	ErrBadEpsilon = errors.New("residual: epsilon must be finite and >= 0")

	// ErrBadBridge is returned for a non-finite bridge parameter R.
	ErrBadBridge = errors.New("residual: bridge parameter must be finite")

	// ErrUnknownNorm is returned for a NormKind outside {Frobenius, Spectral}.
	ErrUnknownNorm = errors.New("residual: unknown norm kind")
)

// String implements fmt.Stringer.
func (k NormKind) String() string {
	switch k {
	case Frobenius:
		return "frobenius"
	case Spectral:
		return "spectral"
	default:
		return fmt.Sprintf("NormKind(%d)", int(k))
	}
}

// ParseNormKind maps "frobenius"/"fro" and "spectral"/"2" (case-insensitive) to a NormKind.
func ParseNormKind(s string) (NormKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frobenius", "fro", "f":
		return Frobenius, nil
	case "spectral", "2", "op":
		return Spectral, nil
	default:
		return 0, fmt.Errorf("ParseNormKind(%q): %w", s, ErrUnknownNorm)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NormKind) MarshalText() ([]byte, error) {
	if k != Frobenius && k != Spectral {
		return nil, ErrUnknownNorm
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NormKind) UnmarshalText(b []byte) error {
	v, err := ParseNormKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// Norm evaluates ‖m‖ for the given kind.
func Norm(m matrix.Matrix, kind NormKind) (float64, error) {
	switch kind {
	case Frobenius:
		return matrix.FrobeniusNorm(m)
	case Spectral:
		return matrix.SpectralNorm(m)
	default:
		return 0, ErrUnknownNorm
	}
}

// CycleResidual measures how far the regularized cycle is from closing:
//
//	U = exp(ε·(D_agg + R·N_agg)),   residual = ‖U − I‖
//
// ε = 0 returns exactly 0 for every R without touching the matrices' values.
//
// Errors: ErrBadEpsilon, ErrBadBridge, ErrUnknownNorm, matrix shape sentinels
// (nil, non-square, mismatched N/D).
func CycleResidual(nAgg, dAgg matrix.Matrix, r, eps float64, kind NormKind) (float64, error) {
	if err := matrix.ValidateSquarePair(nAgg, dAgg); err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return 0, fmt.Errorf("CycleResidual(eps=%g): %w", eps, ErrBadEpsilon)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("CycleResidual(R=%g): %w", r, ErrBadBridge)
	}
	if kind != Frobenius && kind != Spectral {
		return 0, fmt.Errorf("CycleResidual: %w", ErrUnknownNorm)
	}
	if eps == 0 {
		return 0, nil
	}

	gen, err := matrix.AddScaled(dAgg, r, nAgg)
	if err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}
	if gen, err = matrix.Scale(gen, eps); err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}
	u, err := matrix.Expm(gen)
	if err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}
	diff, err := matrix.AddIdentity(u, -1)
	if err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}
	v, err := Norm(diff, kind)
	if err != nil {
		return 0, fmt.Errorf("CycleResidual: %w", err)
	}

	return v, nil
}

// SetResidual is CycleResidual over the current aggregate of s.
func SetResidual(s *edges.Set, r, eps float64, kind NormKind) (float64, error) {
	nAgg, dAgg, err := s.Aggregate()
	if err != nil {
		return 0, fmt.Errorf("SetResidual: %w", err)
	}

	return CycleResidual(nAgg, dAgg, r, eps, kind)
}

// EdgeProductResidual walks the cycle edge by edge instead of through the
// aggregate:
//
//	U = ∏ₑ exp(−ε·(Nₑ − R·Dₑ)),   residual = ‖U − I‖
//
// The product runs in Set order (left to right) and ignores weights. For a
// commuting family it equals the exponential of the summed generators; for a
// non-commuting one it also carries the ordering error.
func EdgeProductResidual(s *edges.Set, r, eps float64, kind NormKind) (float64, error) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return 0, fmt.Errorf("EdgeProductResidual(eps=%g): %w", eps, ErrBadEpsilon)
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("EdgeProductResidual(R=%g): %w", r, ErrBadBridge)
	}
	if kind != Frobenius && kind != Spectral {
		return 0, fmt.Errorf("EdgeProductResidual: %w", ErrUnknownNorm)
	}
	if eps == 0 {
		return 0, nil
	}

	u, err := matrix.NewIdentity(s.Dim())
	if err != nil {
		return 0, fmt.Errorf("EdgeProductResidual: %w", err)
	}
	for i, e := range s.Edges() {
		gen, err := matrix.AddScaled(e.N(), -r, e.D())
		if err != nil {
			return 0, fmt.Errorf("EdgeProductResidual: edge %d: %w", i, err)
		}
		if gen, err = matrix.Scale(gen, -eps); err != nil {
			return 0, fmt.Errorf("EdgeProductResidual: edge %d: %w", i, err)
		}
		step, err := matrix.Expm(gen)
		if err != nil {
			return 0, fmt.Errorf("EdgeProductResidual: edge %d: %w", i, err)
		}
		if u, err = matrix.Mul(u, step); err != nil {
			return 0, fmt.Errorf("EdgeProductResidual: edge %d: %w", i, err)
		}
	}
	diff, err := matrix.AddIdentity(u, -1)
	if err != nil {
		return 0, fmt.Errorf("EdgeProductResidual: %w", err)
	}

	return Norm(diff, kind)
}

// Objective returns R ↦ CycleResidual(nAgg, dAgg, R, eps, kind) for scalar
// searches. Evaluation errors map to +Inf so a search never stops on them.
func Objective(nAgg, dAgg matrix.Matrix, eps float64, kind NormKind) func(float64) float64 {
	return func(r float64) float64 {
		v, err := CycleResidual(nAgg, dAgg, r, eps, kind)
		if err != nil {
			return math.Inf(1)
		}

		return v
	}
}
