// SPDX-License-Identifier: MIT

package jointdiag

import (
	"fmt"

	"github.com/katalvlaran/bridgenull/edges"
)

// ApplyToSet jointly diagonalizes the weighted aggregate (N_agg, D_agg) of s
// and returns a new Set whose edges are (SᵀNᵢS, SᵀDᵢS) with the same weights.
// s itself is left unchanged.
func ApplyToSet(s *edges.Set, opts Options) (*edges.Set, *Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, nil, fmt.Errorf("ApplyToSet: %w", edges.ErrEmptySet)
	}
	nAgg, dAgg, err := s.Aggregate()
	if err != nil {
		return nil, nil, fmt.Errorf("ApplyToSet: %w", err)
	}
	res, err := Diagonalize(nAgg, dAgg, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("ApplyToSet: %w", err)
	}
	out, err := s.ApplyTransform(res.S)
	if err != nil {
		return nil, nil, fmt.Errorf("ApplyToSet: %w", err)
	}

	return out, res, nil
}
