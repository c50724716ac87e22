// SPDX-License-Identifier: MIT

package edges

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bridgenull/matrix"
)

// CommutatorDiagnostics returns the largest commutator norms across the Set.
// NN and DD range over distinct pairs i<j; ND ranges over all (i, j), including i = j.
// A single-edge Set has MaxNN = MaxDD = 0.
//
// Complexity: O(m²·n³).
func CommutatorDiagnostics(s *Set) (Diagnostics, error) {
	var diag Diagnostics
	m := len(s.edges)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m; i++ {
		for j = 0; j < m; j++ {
			if j > i {
				if v, err = commNorm(s.edges[i].n, s.edges[j].n); err != nil {
					return Diagnostics{}, fmt.Errorf("CommutatorDiagnostics: NN(%d,%d): %w", i, j, err)
				}
				diag.MaxNN = math.Max(diag.MaxNN, v)
				if v, err = commNorm(s.edges[i].d, s.edges[j].d); err != nil {
					return Diagnostics{}, fmt.Errorf("CommutatorDiagnostics: DD(%d,%d): %w", i, j, err)
				}
				diag.MaxDD = math.Max(diag.MaxDD, v)
			}
			if v, err = commNorm(s.edges[i].n, s.edges[j].d); err != nil {
				return Diagnostics{}, fmt.Errorf("CommutatorDiagnostics: ND(%d,%d): %w", i, j, err)
			}
			diag.MaxND = math.Max(diag.MaxND, v)
		}
	}

	return diag, nil
}

func commNorm(a, b *matrix.Dense) (float64, error) {
	c, err := matrix.Commutator(a, b)
	if err != nil {
		return 0, err
	}

	return matrix.SpectralNorm(c)
}

// EffectivelyCommuting reports whether every commutator norm is at most atol.
func (d Diagnostics) EffectivelyCommuting(atol float64) bool {
	return d.MaxNN <= atol && d.MaxDD <= atol && d.MaxND <= atol
}

// FirstOrderBound is the leading-order residual floor ε·MaxND expected from
// the N–D commutators at regularization strength ε.
func (d Diagnostics) FirstOrderBound(eps float64) float64 {
	return eps * d.MaxND
}
