// SPDX-License-Identifier: MIT

package edges

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bridgenull/matrix"
)

// NewSet builds a Set over the given edges with uniform weights 1/m.
//
// Errors: ErrEmptySet (no edges or a nil edge), ErrShapeMismatch (edges of different n).
func NewSet(es ...*Edge) (*Set, error) {
	if len(es) == 0 {
		return nil, fmt.Errorf("NewSet: %w", ErrEmptySet)
	}
	dim := -1
	for i, e := range es {
		if e == nil {
			return nil, fmt.Errorf("NewSet: edge %d is nil: %w", i, ErrEmptySet)
		}
		if dim < 0 {
			dim = e.Dim()
		}
		if e.Dim() != dim {
			return nil, fmt.Errorf("NewSet: edge %d has n=%d, want %d: %w", i, e.Dim(), dim, ErrShapeMismatch)
		}
	}
	s := &Set{
		edges: append([]*Edge(nil), es...),
		dim:   dim,
	}
	s.ResetUniform()

	return s, nil
}

// Len returns the number of edges m.
func (s *Set) Len() int { return len(s.edges) }

// Dim returns the generator size n.
func (s *Set) Dim() int { return s.dim }

// Edge returns edge i. Edges are immutable, so the pointer is shared.
func (s *Set) Edge(i int) (*Edge, error) {
	if i < 0 || i >= len(s.edges) {
		return nil, fmt.Errorf("Set.Edge(%d): %w", i, matrix.ErrOutOfRange)
	}

	return s.edges[i], nil
}

// Edges returns the edges in order (a fresh slice).
func (s *Set) Edges() []*Edge { return append([]*Edge(nil), s.edges...) }

// Weights returns a copy of the weight vector.
func (s *Set) Weights() []float64 { return append([]float64(nil), s.weights...) }

// ResetUniform sets every weight to 1/m.
func (s *Set) ResetUniform() {
	m := len(s.edges)
	s.weights = make([]float64, m)
	for i := range s.weights {
		s.weights[i] = 1 / float64(m)
	}
}

// SetWeights replaces the weight vector after checking it lies on the simplex
// within SimplexTol. The slice is copied.
func (s *Set) SetWeights(w []float64) error {
	if err := CheckSimplex(w, len(s.edges)); err != nil {
		return fmt.Errorf("Set.SetWeights: %w", err)
	}
	s.weights = append([]float64(nil), w...)

	return nil
}

// CheckSimplex reports whether w has length m, finite entries ≥ −SimplexTol and
// Σw = 1 ± SimplexTol.
func CheckSimplex(w []float64, m int) error {
	if len(w) != m {
		return fmt.Errorf("len %d, want %d: %w", len(w), m, ErrBadWeights)
	}
	sum := 0.0
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < -SimplexTol {
			return fmt.Errorf("w[%d]=%g: %w", i, v, ErrBadWeights)
		}
		sum += v
	}
	if math.Abs(sum-1) > SimplexTol {
		return fmt.Errorf("Σw=%g: %w", sum, ErrBadWeights)
	}

	return nil
}

// Clone returns an independent copy (edges shared, weights copied).
func (s *Set) Clone() *Set {
	return &Set{
		edges:   append([]*Edge(nil), s.edges...),
		weights: append([]float64(nil), s.weights...),
		dim:     s.dim,
	}
}

// Aggregate returns (Σ wᵢNᵢ, Σ wᵢDᵢ) under the current weights.
// The result is recomputed on every call.
func (s *Set) Aggregate() (*matrix.Dense, *matrix.Dense, error) {
	return s.AggregateWith(s.weights)
}

// AggregateWith returns (Σ wᵢNᵢ, Σ wᵢDᵢ) for an arbitrary coefficient vector.
// w only needs the right length and finite entries; finite-difference probes
// evaluate points slightly off the simplex.
func (s *Set) AggregateWith(w []float64) (*matrix.Dense, *matrix.Dense, error) {
	if len(w) != len(s.edges) {
		return nil, nil, fmt.Errorf("Set.AggregateWith: len %d, want %d: %w", len(w), len(s.edges), ErrBadWeights)
	}
	ns := make([]matrix.Matrix, len(s.edges))
	ds := make([]matrix.Matrix, len(s.edges))
	for i, e := range s.edges {
		ns[i], ds[i] = e.n, e.d
	}
	nAgg, err := matrix.LinearCombination(w, ns)
	if err != nil {
		return nil, nil, fmt.Errorf("Set.AggregateWith: N: %w", err)
	}
	dAgg, err := matrix.LinearCombination(w, ds)
	if err != nil {
		return nil, nil, fmt.Errorf("Set.AggregateWith: D: %w", err)
	}

	return nAgg, dAgg, nil
}

// ApplyTransform returns a new Set whose edges are (SᵀNᵢS, SᵀDᵢS), carrying the
// same weights. S must be n×n and orthogonal within OrthoTol.
func (s *Set) ApplyTransform(tr matrix.Matrix) (*Set, error) {
	if err := CheckOrthogonal(tr, s.dim); err != nil {
		return nil, fmt.Errorf("Set.ApplyTransform: %w", err)
	}
	out := make([]*Edge, len(s.edges))
	var err error
	for i, e := range s.edges {
		if out[i], err = e.Transform(tr); err != nil {
			return nil, fmt.Errorf("Set.ApplyTransform: edge %d: %w", i, err)
		}
	}

	return &Set{edges: out, weights: append([]float64(nil), s.weights...), dim: s.dim}, nil
}

// CheckOrthogonal verifies that tr is n×n with max |SᵀS − I| ≤ OrthoTol.
func CheckOrthogonal(tr matrix.Matrix, n int) error {
	if err := matrix.ValidateSquareNonNil(tr); err != nil {
		return err
	}
	if tr.Rows() != n {
		return fmt.Errorf("transform is %d×%d, want %d×%d: %w", tr.Rows(), tr.Rows(), n, n, ErrShapeMismatch)
	}
	st, err := matrix.Transpose(tr)
	if err != nil {
		return err
	}
	sts, err := matrix.Mul(st, tr)
	if err != nil {
		return err
	}
	id, err := matrix.NewIdentity(n)
	if err != nil {
		return err
	}
	ok, err := matrix.AllClose(sts, id, 0, OrthoTol)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOrthogonal
	}

	return nil
}

// RegularizeD returns a Set in which every D that is not positive definite has
// been shifted by δ·I, δ = RegularizeRel·max(1, ‖D‖₂) − λ_min when λ_min ≤ 0.
// The second result counts the shifted edges. Only the symmetric part of D
// decides definiteness.
func (s *Set) RegularizeD() (*Set, int, error) {
	out := s.Clone()
	shifted := 0
	for i, e := range s.edges {
		lmin, norm, err := symmetricExtremes(e.d)
		if err != nil {
			return nil, 0, fmt.Errorf("Set.RegularizeD: edge %d: %w", i, err)
		}
		if lmin > 0 {
			continue
		}
		delta := RegularizeRel*math.Max(1, norm) - lmin
		d, err := matrix.AddIdentity(e.d, delta)
		if err != nil {
			return nil, 0, fmt.Errorf("Set.RegularizeD: edge %d: %w", i, err)
		}
		out.edges[i] = &Edge{n: e.n, d: d}
		shifted++
	}

	return out, shifted, nil
}

// symmetricExtremes returns λ_min of (D + Dᵀ)/2 and ‖D‖₂.
func symmetricExtremes(d *matrix.Dense) (float64, float64, error) {
	dt, err := matrix.Transpose(d)
	if err != nil {
		return 0, 0, err
	}
	sum, err := matrix.Add(d, dt)
	if err != nil {
		return 0, 0, err
	}
	sym, err := matrix.Scale(sum, 0.5)
	if err != nil {
		return 0, 0, err
	}
	norm, err := matrix.SpectralNorm(d)
	if err != nil {
		return 0, 0, err
	}
	n := d.Rows()
	eigs, _, err := matrix.Eigen(sym, 1e-12*math.Max(1, norm), 50*n*n+100)
	if err != nil {
		return 0, 0, err
	}
	lmin := math.Inf(1)
	for _, l := range eigs {
		lmin = math.Min(lmin, l)
	}

	return lmin, norm, nil
}

// ScaleUniform rescales every generator by c = 1/√M, M = max(‖Nᵢ‖₂, ‖Dᵢ‖₂), so
// the largest spectral norm in the Set becomes √M. A Set of zero generators
// is returned as is with c = 1.
func (s *Set) ScaleUniform() (*Set, float64, error) {
	top := 0.0
	for i, e := range s.edges {
		for _, g := range []*matrix.Dense{e.n, e.d} {
			v, err := matrix.SpectralNorm(g)
			if err != nil {
				return nil, 0, fmt.Errorf("Set.ScaleUniform: edge %d: %w", i, err)
			}
			top = math.Max(top, v)
		}
	}
	if top == 0 {
		return s.Clone(), 1, nil
	}
	c := 1 / math.Sqrt(top)
	out := s.Clone()
	var err error
	for i, e := range s.edges {
		if out.edges[i], err = e.Scaled(c); err != nil {
			return nil, 0, fmt.Errorf("Set.ScaleUniform: edge %d: %w", i, err)
		}
	}

	return out, c, nil
}
