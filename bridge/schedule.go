// SPDX-License-Identifier: MIT

package bridge

import (
	"fmt"
	"math"
)

// Schedule is a strictly decreasing list of positive ε values.
type Schedule []float64

// Geometric returns start, start·factor, start·factor², … while the value stays
// ≥ target, and appends target when the progression does not land on it.
// Requires start ≥ target > 0 and 0 < factor < 1.
func Geometric(start, target, factor float64) (Schedule, error) {
	for _, v := range []float64{start, target, factor} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Geometric: %w", ErrBadSchedule)
		}
	}
	if target <= 0 || start < target || factor <= 0 || factor >= 1 {
		return nil, fmt.Errorf("Geometric(start=%g, target=%g, factor=%g): %w", start, target, factor, ErrBadSchedule)
	}
	var out Schedule
	// relative slack keeps a value like 1e-4 computed as 0.1·0.5ᵏ from
	// landing a hair below target and being appended twice
	slack := target * 1e-9
	for eps := start; eps >= target-slack; eps *= factor {
		out = append(out, eps)
	}
	if last := out[len(out)-1]; math.Abs(last-target) > slack {
		out = append(out, target)
	}

	return out, nil
}

// Explicit validates and copies a caller-supplied schedule.
func Explicit(eps []float64) (Schedule, error) {
	s := Schedule(append([]float64(nil), eps...))
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("Explicit: %w", err)
	}

	return s, nil
}

// Validate checks that s is non-empty, finite, positive and strictly decreasing.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return ErrBadSchedule
	}
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("eps[%d]=%g: %w", i, v, ErrBadSchedule)
		}
		if i > 0 && v >= s[i-1] {
			return fmt.Errorf("eps[%d]=%g >= eps[%d]=%g: %w", i, v, i-1, s[i-1], ErrBadSchedule)
		}
	}

	return nil
}
