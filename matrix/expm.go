// SPDX-License-Identifier: MIT

package matrix

import "math"

const (
	// expmPadeDegree is the diagonal Padé degree q used by Expm.
	expmPadeDegree = 6

	// expmScaleTarget bounds ‖A/2^s‖_∞ before the Padé evaluation.
	expmScaleTarget = 0.5

	// expmMaxSquarings caps s so a huge input fails instead of looping.
	expmMaxSquarings = 1024
)

// Expm computes the matrix exponential e^A of a square matrix.
// MAIN DESCRIPTION:
//   - Scaling and squaring with a diagonal (6,6) Padé approximant.
//
// Implementation:
//   - Stage 1: Validate square, finite. A zero matrix maps to I exactly.
//   - Stage 2: Pick the smallest s ≥ 0 with ‖A‖_∞/2^s ≤ 0.5 and set X = A/2^s.
//   - Stage 3: Accumulate N = Σ c_k X^k and D = Σ (−1)^k c_k X^k for k = 0..6, with
//     c_0 = 1 and c_k = c_{k−1}·(q−k+1)/(k·(2q−k+1)).
//   - Stage 4: F = D⁻¹·N (D is close to I, so LU without pivoting is safe), then
//     square F s times.
//
// Behavior highlights:
//   - Deterministic: fixed term order and fixed number of squarings for a given A.
//   - Relative accuracy near machine precision for ‖A‖ in the ranges used here.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (non-finite input),
//     ErrNotConverged (the squarings overflowed).
//
// Complexity:
//   - Time O((q + s)·n^3), Space O(n^2).
func Expm(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	a, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opExpm, ErrNaNInf)
		}
	}
	n := a.r
	norm := infNorm(a)
	if norm == NormZero {
		return NewIdentity(n)
	}

	s := 0
	for scaled := norm; scaled > expmScaleTarget && s < expmMaxSquarings; s++ {
		scaled /= 2
	}
	x, err := Scale(a, math.Ldexp(1, -s))
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}

	num, _ := NewIdentity(n)
	den, _ := NewIdentity(n)
	power, _ := NewIdentity(n)
	c := 1.0
	sign := 1.0
	for k := 1; k <= expmPadeDegree; k++ {
		c *= float64(expmPadeDegree-k+1) / float64(k*(2*expmPadeDegree-k+1))
		sign = -sign
		if power, err = Mul(x, power); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
		for idx, v := range power.data {
			num.data[idx] += c * v
			den.data[idx] += sign * c * v
		}
	}

	denInv, err := Inverse(den)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	f, err := Mul(denInv, num)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	for ; s > 0; s-- {
		if f, err = Mul(f, f); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
	}
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opExpm, ErrNotConverged)
		}
	}

	return f, nil
}
