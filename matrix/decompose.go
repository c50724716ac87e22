// SPDX-License-Identifier: MIT
// Package matrix: factorizations (Jacobi eigen, Doolittle LU, inverse, Householder QR).
//
// Determinism:
//   - No pivoting in LU/Inverse and a fixed pivot scan in Jacobi, so the same
//     input always yields the same factors.

package matrix

import "math"

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// MAIN DESCRIPTION:
//   - Classical Jacobi: repeatedly annihilate the largest off-diagonal entry.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Pick (p,q) with the largest |A[p,q]| in i→j order and apply a rotation
//     to A (symmetric update) and accumulate it into Q.
//   - Stage 3: Stop when max |A[p,q]| < tol; fail if maxIter rotations were not enough.
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: convergence threshold on the largest off-diagonal magnitude.
//   - maxIter: safety cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf (bad tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Complexity:
//   - Time O(maxIter · n^2), Space O(n^2).
//
// AI-Hints:
//   - Scale the input to unit norm before calling when tol is absolute and the
//     entries are tiny; otherwise the loop exits before doing any work.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, _, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.cloneDense() // working copy; input stays untouched
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, p, qq int
		maxOff         float64
		app, aqq, apq  float64
		aip, aiq       float64
		qip, qiq       float64
		theta, t, c, s float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff, p, qq = maxOffDiag(a)
		if maxOff < tol || maxOff == NormZero {
			break
		}

		app = a.data[p*n+p]
		aqq = a.data[qq*n+qq]
		apq = a.data[p*n+qq]

		// θ = (aqq−app)/(2·apq); t = sign(θ)/(|θ|+√(θ²+1))
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == qq {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+qq]
			a.data[i*n+p], a.data[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a.data[i*n+qq], a.data[qq*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[qq*n+qq] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+qq], a.data[qq*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+qq]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+qq] = s*qip + c*qiq
		}
	}

	if maxOff, _, _ = maxOffDiag(a); maxOff > NormZero && maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// maxOffDiag scans the strict upper triangle and returns max |A[p,q]| with its position.
func maxOffDiag(a *Dense) (float64, int, int) {
	n := a.c
	best, bp, bq := NormZero, 0, 1
	var i, j int
	var off float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > best {
				best, bp, bq = off, i, j
			}
		}
	}

	return best, bp, bq
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
// MAIN DESCRIPTION:
//   - Row i of U then column i of L, in increasing i.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular (zero pivot).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - No pivoting; callers should feed well-conditioned, diagonally dominant
//     inputs (the Padé denominator in Expm is one).
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, _, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := a.r
	l, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = a.data[i*n+j] - sum
		}
		if u.data[i*n+i] == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, ErrSingular)
		}
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (a.data[j*n+i] - sum) / u.data[i*n+i]
		}
	}

	return l, u, nil
}

// Inverse computes A^{-1} using Doolittle LU factorization without pivoting.
// MAIN DESCRIPTION:
//   - Factor once, then forward/backward substitution for each basis column e_col.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Determinism:
//   - Fixed traversal (col↑, forward i↑, backward i↓).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	l, u, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := l.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// L·y = e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * y[k]
			}
			if i == col {
				y[i] = 1 - sum
			} else {
				y[i] = -sum
			}
		}
		// U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += u.data[i*n+k] * x[k]
			}
			if u.data[i*n+i] == ZeroPivot {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			x[i] = (y[i] - sum) / u.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// QR computes a Householder-based factorization such that A = Qᵀ * R.
// MAIN DESCRIPTION:
//   - Reflect column k below the diagonal onto e_k, for k = 0..n-1, applying each
//     reflector to the working copy (forming R) and to Q (started at I).
//
// Returns:
//   - *Dense: Q (product of reflectors; orthogonal; note A = Qᵀ·R, not Q·R).
//   - *Dense: R (upper triangular).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Q is orthogonal for any input, so it doubles as a random orthogonal basis
//     generator when fed a Gaussian matrix.
func QR(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	src, _, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	n := src.r
	r := src.cloneDense()
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	v := make([]float64, n)
	var (
		i, j, k     int
		norm, alpha float64
		beta, tau   float64
		sum         float64
	)
	for k = 0; k < n; k++ {
		norm = NormZero
		for i = k; i < n; i++ {
			norm += r.data[i*n+k] * r.data[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue // zero column, nothing to reflect
		}
		alpha = -math.Copysign(norm, r.data[k*n+k])

		for i = 0; i < n; i++ {
			v[i] = 0
		}
		for i = k; i < n; i++ {
			v[i] = r.data[i*n+k]
		}
		v[k] -= alpha

		beta = NormZero
		for i = k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			continue
		}
		tau = 2.0 / beta

		for j = 0; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * r.data[i*n+j]
			}
			for i = k; i < n; i++ {
				r.data[i*n+j] -= tau * v[i] * sum
			}
		}
		for j = 0; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * q.data[i*n+j]
			}
			for i = k; i < n; i++ {
				q.data[i*n+j] -= tau * v[i] * sum
			}
		}
	}

	return q, r, nil
}
