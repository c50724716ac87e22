// SPDX-License-Identifier: MIT

// Package matrix provides the dense real-matrix layer used by the bridgenull
// engine: a row-major Dense type with bounds-checked accessors, shape-checked
// kernels (sums, scalar combinations, products, congruence, commutators),
// norms (Frobenius, infinity, spectral), the matrix exponential, and the
// factorizations the rest of the module leans on (Jacobi eigen, Doolittle LU,
// inverse, Householder QR).
//
// Conventions:
//
//   - Kernels never mutate their operands; every result is a fresh *Dense.
//   - Validation goes through the central validators (validators.go) and
//     errors are wrapped as "Op: sentinel" so callers can use errors.Is.
//   - Loop orders are fixed, so identical inputs give bit-identical outputs.
//   - *Dense operands take a flat-slice fast path; any other Matrix is first
//     materialized into a Dense copy.
//
// The package is intended for the small dense matrices (n in the single or
// low double digits) that appear as cycle generators; no blocking or BLAS.
package matrix
