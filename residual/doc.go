// SPDX-License-Identifier: MIT

// Package residual evaluates the cycle residual of aggregate generators:
// how far the regularized holonomy U = exp(ε·(D + R·N)) is from the identity,
// measured in the Frobenius or spectral norm.
//
// Every function is pure and deterministic. ε = 0 is the identity transform,
// so its residual is exactly 0 regardless of R.
package residual
