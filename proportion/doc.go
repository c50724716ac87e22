// SPDX-License-Identifier: MIT

// Package proportion tests whether one generator matrix is an exact scalar
// multiple of another. For an exact null (N = R·D) a single bridge value
// closes the cycle at every ε, with no commutator floor.
package proportion
