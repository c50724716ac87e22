// SPDX-License-Identifier: MIT

package bridge

import "math"

// invPhi is 1/φ = (√5 − 1)/2.
var invPhi = (math.Sqrt(5) - 1) / 2

// SearchResult is the outcome of one bracketed scalar minimization.
type SearchResult struct {
	X, F         float64 // minimizer estimate and its value
	Lo, Hi       float64 // final bracket that was searched
	Iterations   int     // golden-section steps in the last attempt
	Expansions   int     // bracket doublings performed
	Converged    bool    // width fell below tolerance within maxIter
	BracketValid bool    // interior minimum strictly below both endpoint values
}

// GoldenSection minimizes f on [lo, hi] by golden-section search.
// It stops when hi−lo ≤ tol·(1+|mid|) (Converged) or after maxIter steps.
// The returned point is the best of the two interior probes.
//
// Complexity: maxIter+2 evaluations of f.
func GoldenSection(f func(float64) float64, lo, hi, tol float64, maxIter int) (x, fx float64, iters int, converged bool) {
	c := hi - invPhi*(hi-lo)
	d := lo + invPhi*(hi-lo)
	fc, fd := f(c), f(d)
	for iters = 0; iters < maxIter; iters++ {
		if hi-lo <= tol*(1+math.Abs(lo+hi)/2) {
			converged = true
			break
		}
		if fc <= fd {
			hi, d, fd = d, c, fc
			c = hi - invPhi*(hi-lo)
			fc = f(c)
		} else {
			lo, c, fc = c, d, fd
			d = lo + invPhi*(hi-lo)
			fd = f(d)
		}
	}
	if !converged && hi-lo <= tol*(1+math.Abs(lo+hi)/2) {
		converged = true
	}
	if fc <= fd {
		return c, fc, iters, converged
	}

	return d, fd, iters, converged
}

// Minimize runs GoldenSection on [lo, hi] and checks the bracket: the
// minimum must lie strictly inside and sit strictly below f(lo) and f(hi).
// An invalid bracket is doubled around its midpoint up to maxExpansions
// times before the result is returned with BracketValid = false.
func Minimize(f func(float64) float64, lo, hi, tol float64, maxIter, maxExpansions int) SearchResult {
	var res SearchResult
	for attempt := 0; ; attempt++ {
		x, fx, iters, conv := GoldenSection(f, lo, hi, tol, maxIter)
		res = SearchResult{
			X: x, F: fx, Lo: lo, Hi: hi,
			Iterations: iters, Expansions: attempt, Converged: conv,
		}
		res.BracketValid = interiorMinimum(f, x, fx, lo, hi, tol)
		if res.BracketValid || attempt >= maxExpansions {
			return res
		}
		mid, half := (lo+hi)/2, (hi-lo)/2*expansionFactor
		lo, hi = mid-half, mid+half
	}
}

// interiorMinimum reports whether x is away from both ends of [lo, hi] and
// f(x) is strictly below f(lo) and f(hi).
func interiorMinimum(f func(float64) float64, x, fx, lo, hi, tol float64) bool {
	if math.IsNaN(fx) || math.IsInf(fx, 0) {
		return false
	}
	edge := 2 * tol * (1 + math.Abs(x))
	if x-lo <= edge || hi-x <= edge {
		return false
	}

	return fx < f(lo) && fx < f(hi)
}
