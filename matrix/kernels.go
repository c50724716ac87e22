// SPDX-License-Identifier: MIT
// Package matrix: elementwise and product kernels.
//
// Purpose:
//   - Shape-checked sums, scalar combinations, products and similarity transforms.
//   - Every kernel allocates a fresh *Dense; operands are read-only.
//
// Notes:
//   - All kernels use central validators and wrap errors via matrixErrorf with op* tags.
//   - Flat fast paths only; non-Dense operands are materialized once by asDense.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opScale       = "Scale"
	opAddScaled   = "AddScaled"
	opLinComb     = "LinearCombination"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opCongruence  = "Congruence"
	opCommutator  = "Commutator"
	opTrace       = "Trace"
	opEigen       = "Eigen"
	opInverse     = "Inverse"
	opLU          = "LU"
	opQR          = "QR"
	opExpm        = "Expm"
	opFrobInner   = "FrobeniusInner"
	opFrobNorm    = "FrobeniusNorm"
	opInfNorm     = "InfNorm"
	opSpectral    = "SpectralNorm"
	opOffDiag     = "OffDiagEnergy"
	opAllClose    = "AllClose"
	opAddIdentity = "AddIdentity"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// axpby computes out = α·a + β·b for same-shape operands.
// Internal helper shared by Add/Sub/AddScaled.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); materialize both as *Dense.
//   - Stage 2: single flat loop 0..r*c-1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func axpby(alpha float64, a Matrix, beta float64, b Matrix, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	ad, _, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	bd, _, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out, err := NewDense(ad.r, ad.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for k := range out.data {
		out.data[k] = alpha*ad.data[k] + beta*bd.data[k]
	}

	return out, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Add").
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return axpby(1, a, 1, b, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return axpby(1, a, -1, b, opSub) }

// AddScaled returns A + alpha·B.
// This is the generator combination D + R·N used throughout the residual code.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (non-finite alpha).
// Complexity: O(r*c).
func AddScaled(a Matrix, alpha float64, b Matrix) (*Dense, error) {
	if err := ValidateFinite(alpha); err != nil {
		return nil, matrixErrorf(opAddScaled, err)
	}

	return axpby(1, a, alpha, b, opAddScaled)
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
//
// Errors: ErrNilMatrix, ErrNaNInf (non-finite alpha).
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if err := ValidateFinite(alpha); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out, err := NewDense(md.r, md.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range md.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// LinearCombination computes Σ coeffs[k]·mats[k] over same-shape matrices.
// MAIN DESCRIPTION:
//   - Weighted sum used for generator aggregation (Σ wᵢNᵢ, Σ wᵢDᵢ).
//
// Implementation:
//   - Stage 1: validate len(coeffs) == len(mats) > 0, finite coefficients, shapes against mats[0].
//   - Stage 2: accumulate in index order k = 0..m-1 into one flat buffer.
//
// Errors:
//   - ErrDimensionMismatch (length/shape mismatch or empty input), ErrNilMatrix, ErrNaNInf.
//
// Determinism:
//   - Fixed summation order, so the floating-point result depends only on the input order.
//
// Complexity:
//   - Time O(m·r·c), Space O(r·c).
func LinearCombination(coeffs []float64, mats []Matrix) (*Dense, error) {
	if len(mats) == 0 || len(coeffs) != len(mats) {
		return nil, matrixErrorf(opLinComb, ErrDimensionMismatch)
	}
	if err := ValidateNotNil(mats[0]); err != nil {
		return nil, matrixErrorf(opLinComb, err)
	}
	out, err := NewDense(mats[0].Rows(), mats[0].Cols())
	if err != nil {
		return nil, matrixErrorf(opLinComb, err)
	}
	var md *Dense
	for k, m := range mats {
		if err = ValidateBinarySameShape(out, m); err != nil {
			return nil, matrixErrorf(opLinComb, fmt.Errorf("term %d: %w", k, err))
		}
		if err = ValidateFinite(coeffs[k]); err != nil {
			return nil, matrixErrorf(opLinComb, fmt.Errorf("coeff %d: %w", k, err))
		}
		if md, _, err = asDense(m); err != nil {
			return nil, matrixErrorf(opLinComb, err)
		}
		for idx, v := range md.data {
			out.data[idx] += coeffs[k] * v
		}
	}

	return out, nil
}

// Mul performs standard matrix multiplication C = A × B.
// MAIN DESCRIPTION:
//   - Classic triple loop in i→k→j order so the innermost walk is contiguous in B and C.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Determinism:
//   - Fixed loop order.
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, _, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, _, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, inner, c := ad.r, ad.c, bd.c
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, k, j      int
		aik          float64
		rowA, rowB   int
		rowC         int
		outData      = out.data
		aData, bData = ad.data, bd.data
	)
	for i = 0; i < r; i++ {
		rowA, rowC = i*inner, i*c
		for k = 0; k < inner; k++ {
			aik = aData[rowA+k]
			if aik == 0 {
				continue
			}
			rowB = k * c
			for j = 0; j < c; j++ {
				outData[rowC+j] += aik * bData[rowB+j]
			}
		}
	}

	return out, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(md.c, md.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < md.r; i++ {
		for j = 0; j < md.c; j++ {
			out.data[j*md.r+i] = md.data[i*md.c+j]
		}
	}

	return out, nil
}

// Congruence returns SᵀXS.
// With an orthogonal S this is the similarity transform that moves X into
// the basis spanned by the columns of S.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (S and X must be square of equal size).
// Complexity: O(n^3).
func Congruence(s, x Matrix) (*Dense, error) {
	if err := ValidateSquarePair(s, x); err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	st, err := Transpose(s)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	xs, err := Mul(x, s)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	out, err := Mul(st, xs)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}

	return out, nil
}

// Commutator returns [A, B] = AB - BA.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n^3).
func Commutator(a, b Matrix) (*Dense, error) {
	if err := ValidateSquarePair(a, b); err != nil {
		return nil, matrixErrorf(opCommutator, err)
	}
	ab, err := Mul(a, b)
	if err != nil {
		return nil, matrixErrorf(opCommutator, err)
	}
	ba, err := Mul(b, a)
	if err != nil {
		return nil, matrixErrorf(opCommutator, err)
	}
	out, err := Sub(ab, ba)
	if err != nil {
		return nil, matrixErrorf(opCommutator, err)
	}

	return out, nil
}

// Trace returns Σ A[i,i] for a square matrix.
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	sum := ZeroSum
	for i := 0; i < md.r; i++ {
		sum += md.data[i*md.c+i]
	}

	return sum, nil
}

// AddIdentity returns A + alpha·I for a square A.
func AddIdentity(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opAddIdentity, err)
	}
	if err := ValidateFinite(alpha); err != nil {
		return nil, matrixErrorf(opAddIdentity, err)
	}
	md, _, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opAddIdentity, err)
	}
	out := md.cloneDense()
	for i := 0; i < out.r; i++ {
		out.data[i*out.c+i] += alpha
	}

	return out, nil
}
