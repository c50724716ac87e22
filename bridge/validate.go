// SPDX-License-Identifier: MIT

package bridge

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bridgenull/residual"
)

// validateOptions rejects malformed Options before any matrix work.
func validateOptions(o Options) error {
	if err := o.Schedule.Validate(); err != nil {
		return err
	}
	if o.Norm != residual.Frobenius && o.Norm != residual.Spectral {
		return fmt.Errorf("norm %v: %w", o.Norm, residual.ErrUnknownNorm)
	}
	if b := o.Bracket; b != nil {
		if !finite(b.Lo) || !finite(b.Hi) || b.Lo >= b.Hi {
			return fmt.Errorf("bracket [%g, %g]: %w", b.Lo, b.Hi, ErrBadBracket)
		}
	}
	if !finite(o.SearchTol) || o.SearchTol <= 0 {
		return fmt.Errorf("SearchTol=%g: %w", o.SearchTol, ErrOptionViolation)
	}
	if o.MaxIter <= 0 {
		return fmt.Errorf("MaxIter=%d: %w", o.MaxIter, ErrOptionViolation)
	}
	if o.MaxExpansions < 0 {
		return fmt.Errorf("MaxExpansions=%d: %w", o.MaxExpansions, ErrOptionViolation)
	}
	if !finite(o.RStopTol) || o.RStopTol < 0 {
		return fmt.Errorf("RStopTol=%g: %w", o.RStopTol, ErrOptionViolation)
	}
	if !finite(o.ResidualTol) || o.ResidualTol < 0 {
		return fmt.Errorf("ResidualTol=%g: %w", o.ResidualTol, ErrOptionViolation)
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
