// SPDX-License-Identifier: MIT

// Package jointdiag reduces the commutator structure of a generator pair by
// finding one orthogonal basis in which both matrices are as close to
// diagonal as possible.
//
// Commuting symmetric pairs share an eigenbasis and the sweeps drive the
// off-diagonal energy to round-off. For non-commuting pairs exact joint
// diagonalization does not exist; the method then only promises that the
// energy never increases, and it usually stops at MaxIter with
// Converged = false.
//
//	next, res, err := jointdiag.ApplyToSet(set, jointdiag.DefaultOptions())
//	fmt.Printf("off-diagonal reduction %.2fx\n", res.ReductionFactor)
package jointdiag
