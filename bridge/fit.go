// SPDX-License-Identifier: MIT

package bridge

import "math"

// minFitSamples is the smallest sample count that leaves a residual degree of
// freedom for the slope's standard error.
const minFitSamples = 3

// FitPowerLaw fits residual ≈ C·ε^α by ordinary least squares on
// (ln ε, ln residual). Pairs with a non-finite or non-positive ε or residual
// are skipped.
//
//	α    = Sxy / Sxx
//	SE   = sqrt(SSR / (k−2) / Sxx)
//	ln C = ȳ − α·x̄
//	R²   = 1 − SSR/SST   (1 when SST = 0 and the fit is exact)
//
// With fewer than 3 usable pairs, or all ε equal, the Fit is returned with
// Converged = false and NaN statistics.
func FitPowerLaw(eps, res []float64) Fit {
	var xs, ys []float64
	for i := range eps {
		if i >= len(res) {
			break
		}
		e, r := eps[i], res[i]
		if !(e > 0) || !(r > 0) || math.IsInf(e, 0) || math.IsInf(r, 0) {
			continue
		}
		xs = append(xs, math.Log(e))
		ys = append(ys, math.Log(r))
	}

	fit := Fit{Used: len(xs)}
	slope, intercept, sxx, ok := ols(xs, ys)
	if len(xs) < minFitSamples || !ok {
		fit.Alpha, fit.AlphaSE, fit.LogC, fit.R2 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return fit
	}

	var ssr, sst, ybar float64
	for _, y := range ys {
		ybar += y
	}
	ybar /= float64(len(ys))
	for i, x := range xs {
		r := ys[i] - (intercept + slope*x)
		ssr += r * r
		sst += (ys[i] - ybar) * (ys[i] - ybar)
	}

	fit.Alpha = slope
	fit.LogC = intercept
	fit.AlphaSE = math.Sqrt(ssr / float64(len(xs)-2) / sxx)
	switch {
	case sst > 0:
		fit.R2 = 1 - ssr/sst
	case ssr == 0:
		fit.R2 = 1
	default:
		fit.R2 = math.NaN()
	}
	fit.Converged = true

	return fit
}

// ExtrapolateR returns the ε → 0 intercept of the least-squares line
// R* ≈ a + b·ε, or (NaN, false) with fewer than 2 points or a single distinct ε.
func ExtrapolateR(eps, r []float64) (float64, bool) {
	n := min(len(eps), len(r))
	_, intercept, _, ok := ols(eps[:n], r[:n])
	if n < 2 || !ok {
		return math.NaN(), false
	}

	return intercept, true
}

// ols fits y = intercept + slope·x. ok is false when Sxx = 0 or the input is empty.
func ols(xs, ys []float64) (slope, intercept, sxx float64, ok bool) {
	n := float64(len(xs))
	if len(xs) == 0 {
		return 0, 0, 0, false
	}
	var xbar, ybar float64
	for i := range xs {
		xbar += xs[i]
		ybar += ys[i]
	}
	xbar /= n
	ybar /= n
	var sxy float64
	for i := range xs {
		dx := xs[i] - xbar
		sxx += dx * dx
		sxy += dx * (ys[i] - ybar)
	}
	if sxx == 0 {
		return 0, 0, 0, false
	}
	slope = sxy / sxx

	return slope, ybar - slope*xbar, sxx, true
}
