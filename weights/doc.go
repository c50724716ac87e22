// SPDX-License-Identifier: MIT

// Package weights tunes the per-edge weights of an edges.Set so that the
// cycle residual at a fixed bridge parameter R and regularization ε is as
// small as the non-commutativity of the edges allows.
//
// The search is a local method: projected gradient descent on the
// probability simplex with finite-difference gradients. It guarantees the
// result is never worse than the uniform weighting, not global optimality.
// Weights that end at (or near) zero are legitimate output.
//
//	res, err := weights.Optimize(set, rStar, 1e-2, residual.Frobenius, weights.DefaultConfig())
//	// set.Weights() now equals res.Weights
package weights
