// SPDX-License-Identifier: MIT
// Package matrix - constructors and small helpers.
//
// Purpose:
//   - Provide thin, intention-revealing entry points for common shapes.
//   - Each helper delegates to NewDense and fills a fixed pattern.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// NewDiagonal returns the square matrix with diag on its main diagonal.
// Errors: ErrInvalidDimensions for an empty diag, ErrNaNInf for non-finite entries.
func NewDiagonal(diag []float64) (*Dense, error) {
	n := len(diag)
	d, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, v := range diag {
		if err = d.Set(i, i, v); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// ZerosLike returns a zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// Diagonal returns a copy of the main diagonal of a square matrix.
func Diagonal(m Matrix) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows())
	for i := range out {
		out[i], _ = m.At(i, i) // shape already validated
	}

	return out, nil
}
