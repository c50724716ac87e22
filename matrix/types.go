// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface and numeric policy constants.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Kernels accept any implementation and take the flat fast path when the
// operand is a *Dense.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Numeric policy (single source of truth).
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry, orthogonality) in tests and validators.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTol is the off-diagonal threshold used by SpectralNorm when it
	// runs Jacobi on a scaled Gram matrix.
	DefaultEigenTol = 1e-12
)

// Shared zero literals keep kernels free of magic numbers.
const (
	// NormZero is the additive identity for norm and accumulation operations.
	NormZero = 0.0

	// ZeroSum is the initial sum value for substitutions and dot products.
	ZeroSum = 0.0

	// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
	ZeroPivot = 0.0
)
