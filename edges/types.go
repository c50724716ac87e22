// SPDX-License-Identifier: MIT
// Package edges - public types, sentinel errors and tolerances.
//
// Purpose:
//   - Declare Edge (an immutable generator pair) and Set (edges + simplex weights).
//   - Centralize sentinel errors so callers can branch with errors.Is.

package edges

import (
	"errors"

	"github.com/katalvlaran/bridgenull/matrix"
)

// Sentinel errors.
var (
	// ErrEmptySet is returned when a Set would contain no edges.
	ErrEmptySet = errors.New("edges: empty edge set")

	// ErrShapeMismatch indicates that N and D (or two edges) do not share one n×n shape.
	ErrShapeMismatch = errors.New("edges: generator shape mismatch")

	// ErrBadWeights indicates a weight vector of the wrong length, with a non-finite or
	// negative entry, or not summing to one.
	ErrBadWeights = errors.New("edges: weights must lie on the probability simplex")

	// ErrNotOrthogonal indicates that a transform S violates SᵀS = I within OrthoTol.
	ErrNotOrthogonal = errors.New("edges: transform is not orthogonal")

	// ErrBadParameter indicates a non-positive size or count passed to a generator.
	ErrBadParameter = errors.New("edges: invalid generator parameter")
)

const (
	// SimplexTol is the tolerance on Σw = 1 and w ≥ 0 accepted by SetWeights.
	SimplexTol = 1e-6

	// OrthoTol is the max-entry tolerance on SᵀS − I accepted by ApplyTransform.
	OrthoTol = 1e-8

	// DShift is the ridge added to every D by Generate (D = AᵀA + DShift·I).
	DShift = 0.2

	// RegularizeRel scales the diagonal shift used by Set.RegularizeD.
	RegularizeRel = 1e-6
)

// Edge is an immutable pair of real n×n generator matrices (N, D).
// N is the "numerator" generator and D the "denominator" generator.
// Accessors return copies.
type Edge struct {
	n *matrix.Dense
	d *matrix.Dense
}

// Set is an ordered sequence of edges with a weight vector aligned by index.
// Weights start uniform (1/m) and stay on the probability simplex.
//
// A Set is not safe for concurrent mutation; use Clone to hand one to another goroutine.
type Set struct {
	edges   []*Edge
	weights []float64
	dim     int
}

// Diagnostics summarizes how far a Set is from a commuting family.
// Every value is a maximum of spectral norms of commutators over edge pairs.
type Diagnostics struct {
	MaxNN float64 `json:"max_nn" yaml:"max_nn"` // max_{i<j} ‖[Nᵢ, Nⱼ]‖₂
	MaxDD float64 `json:"max_dd" yaml:"max_dd"` // max_{i<j} ‖[Dᵢ, Dⱼ]‖₂
	MaxND float64 `json:"max_nd" yaml:"max_nd"` // max_{i,j} ‖[Nᵢ, Dⱼ]‖₂
}
