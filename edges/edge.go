// SPDX-License-Identifier: MIT

package edges

import (
	"fmt"

	"github.com/katalvlaran/bridgenull/matrix"
)

// NewEdge validates and copies a generator pair.
// Both matrices must be non-nil, square and of the same size.
func NewEdge(n, d matrix.Matrix) (*Edge, error) {
	if err := matrix.ValidateSquarePair(n, d); err != nil {
		return nil, fmt.Errorf("NewEdge: %w: %w", ErrShapeMismatch, err)
	}
	nd, err := copyDense(n)
	if err != nil {
		return nil, fmt.Errorf("NewEdge: N: %w", err)
	}
	dd, err := copyDense(d)
	if err != nil {
		return nil, fmt.Errorf("NewEdge: D: %w", err)
	}

	return &Edge{n: nd, d: dd}, nil
}

// copyDense materializes any Matrix as an independent *Dense.
func copyDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d.Clone().(*matrix.Dense), nil
	}

	return matrix.Scale(m, 1)
}

// N returns a copy of the numerator generator.
func (e *Edge) N() *matrix.Dense { return e.n.Clone().(*matrix.Dense) }

// D returns a copy of the denominator generator.
func (e *Edge) D() *matrix.Dense { return e.d.Clone().(*matrix.Dense) }

// Dim returns n for an n×n edge.
func (e *Edge) Dim() int { return e.n.Rows() }

// Transform returns the edge (SᵀNS, SᵀDS). S is not checked for orthogonality here.
func (e *Edge) Transform(s matrix.Matrix) (*Edge, error) {
	n, err := matrix.Congruence(s, e.n)
	if err != nil {
		return nil, fmt.Errorf("Edge.Transform: N: %w", err)
	}
	d, err := matrix.Congruence(s, e.d)
	if err != nil {
		return nil, fmt.Errorf("Edge.Transform: D: %w", err)
	}

	return &Edge{n: n, d: d}, nil
}

// Scaled returns (c·N, c·D).
func (e *Edge) Scaled(c float64) (*Edge, error) {
	n, err := matrix.Scale(e.n, c)
	if err != nil {
		return nil, fmt.Errorf("Edge.Scaled: %w", err)
	}
	d, err := matrix.Scale(e.d, c)
	if err != nil {
		return nil, fmt.Errorf("Edge.Scaled: %w", err)
	}

	return &Edge{n: n, d: d}, nil
}
