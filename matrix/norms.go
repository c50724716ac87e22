// SPDX-License-Identifier: MIT
// Package matrix: inner products and norms.

package matrix

import "math"

// FrobeniusInner returns ⟨A, B⟩_F = Σ A[i,j]·B[i,j].
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func FrobeniusInner(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opFrobInner, err)
	}
	ad, _, err := asDense(a)
	if err != nil {
		return 0, matrixErrorf(opFrobInner, err)
	}
	bd, _, err := asDense(b)
	if err != nil {
		return 0, matrixErrorf(opFrobInner, err)
	}
	sum := ZeroSum
	for k, v := range ad.data {
		sum += v * bd.data[k]
	}

	return sum, nil
}

// FrobeniusNorm returns ‖A‖_F = sqrt(Σ A[i,j]²).
//
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobNorm, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opFrobNorm, err)
	}

	return frobenius(md.data), nil
}

// frobenius is the slice-level kernel shared by the norm helpers.
func frobenius(data []float64) float64 {
	sum := ZeroSum
	for _, v := range data {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// InfNorm returns the maximum absolute row sum ‖A‖_∞.
//
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func InfNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opInfNorm, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opInfNorm, err)
	}

	return infNorm(md), nil
}

func infNorm(md *Dense) float64 {
	best := NormZero
	var i, j int
	var row float64
	for i = 0; i < md.r; i++ {
		row = NormZero
		for j = 0; j < md.c; j++ {
			row += math.Abs(md.data[i*md.c+j])
		}
		if row > best {
			best = row
		}
	}

	return best
}

// SpectralNorm returns the largest singular value ‖A‖₂ of any real matrix.
// MAIN DESCRIPTION:
//   - σ_max(A) = ‖A‖_F · sqrt(λ_max(GᵀG)) with G = A/‖A‖_F.
//
// Implementation:
//   - Stage 1: f = ‖A‖_F; a zero matrix has norm 0.
//   - Stage 2: build the Gram matrix of the unit-Frobenius copy (exactly symmetric by
//     construction: upper triangle computed, lower mirrored).
//   - Stage 3: Jacobi eigen (DefaultEigenTol) and take the largest eigenvalue, clamped at 0.
//
// Behavior highlights:
//   - Scaling first keeps the absolute Jacobi tolerance meaningful for tiny residual
//     matrices (‖A‖ ~ 1e-8 and below).
//
// Errors:
//   - ErrNilMatrix, ErrMatrixEigenFailed (wrapped; not expected for n ≤ 64).
//
// Complexity:
//   - Time O(c^2·r + iters·c^2), Space O(c^2).
func SpectralNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	f := frobenius(md.data)
	if f == NormZero {
		return NormZero, nil
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, matrixErrorf(opSpectral, ErrNaNInf)
	}

	r, c := md.r, md.c
	gram, err := NewDense(c, c)
	if err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	var (
		i, j, k int
		sum     float64
		inv     = 1.0 / f
	)
	for i = 0; i < c; i++ {
		for j = i; j < c; j++ {
			sum = ZeroSum
			for k = 0; k < r; k++ {
				sum += (md.data[k*c+i] * inv) * (md.data[k*c+j] * inv)
			}
			gram.data[i*c+j] = sum
			gram.data[j*c+i] = sum
		}
	}

	eigs, _, err := Eigen(gram, DefaultEigenTol, 50*c*c+100)
	if err != nil {
		return 0, matrixErrorf(opSpectral, err)
	}
	lmax := NormZero
	for _, l := range eigs {
		if l > lmax {
			lmax = l
		}
	}

	return f * math.Sqrt(lmax), nil
}

// OffDiagEnergy returns Σ_{i≠j} A[i,j]² for a square matrix.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n^2).
func OffDiagEnergy(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opOffDiag, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opOffDiag, err)
	}
	sum := ZeroSum
	var i, j int
	for i = 0; i < md.r; i++ {
		for j = 0; j < md.c; j++ {
			if i != j {
				sum += md.data[i*md.c+j] * md.data[i*md.c+j]
			}
		}
	}

	return sum, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Negative tolerances are normalized to their magnitude.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	ad, _, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	bd, _, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for k, av := range ad.data {
		bv := bd.data[k]
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
