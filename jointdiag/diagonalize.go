// SPDX-License-Identifier: MIT

package jointdiag

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/bridgenull/matrix"
)

// Diagonalize searches for an orthogonal S that makes SᵀNS and SᵀDS as
// diagonal as possible at the same time.
//
// MAIN DESCRIPTION:
//
//	Off-diagonal energy E(S) = off(SᵀNS) + off(SᵀDS), off(A) = Σ_{i≠j} a_ij².
//	A sweep visits every pair p < q and applies the plane rotation that
//	maximizes the combined diagonal mass of both 2×2 blocks.
//
// Implementation:
//   - For each matrix A in {N, D}: u = (a_pp − a_qq)/2, v = (a_pq + a_qp)/2
//     and g = (u, −v). With G = Σ g·gᵀ the best doubled angle φ is the
//     principal direction of G: φ = ½·atan2(2G₀₁, G₀₀ − G₁₁).
//   - The energy drop of the rotation is 2·Σ[(u·cosφ − v·sinφ)² − u²];
//     only rotations with a positive drop are applied, so E never grows.
//   - Accepted rotations update both matrices (A ← JᵀAJ) and S ← S·J.
//
// Stops when a sweep lowers E by less than Tol (or Tol·E_before when
// Relative), when E reaches 0, or after MaxIter sweeps with
// Converged = false. Non-commuting pairs usually end in the last case.
//
// Errors: matrix shape sentinels for nil, non-square or mismatched inputs,
// ErrBadOptions for malformed options.
//
// Complexity: O(MaxIter·n³).
func Diagonalize(n, d matrix.Matrix, opts Options) (*Result, error) {
	if err := matrix.ValidateSquarePair(n, d); err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	if math.IsNaN(opts.Tol) || math.IsInf(opts.Tol, 0) || opts.Tol < 0 || opts.MaxIter <= 0 {
		return nil, fmt.Errorf("Diagonalize(tol=%g, maxIter=%d): %w", opts.Tol, opts.MaxIter, ErrBadOptions)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w, err := newWork(n, d)
	if err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}

	res := &Result{}
	res.OffNBefore, res.OffDBefore = off(w.a[0], w.dim), off(w.a[1], w.dim)
	res.OffBefore = res.OffNBefore + res.OffDBefore
	energy := res.OffBefore

	for k := 0; k < opts.MaxIter && energy > 0; k++ {
		sw := w.sweep()
		sw.K = k
		sw.OffN, sw.OffD = off(w.a[0], w.dim), off(w.a[1], w.dim)
		sw.Energy = sw.OffN + sw.OffD
		sw.Reduction = energy - sw.Energy
		res.History = append(res.History, sw)
		res.Iterations = k + 1
		if opts.OnSweep != nil {
			opts.OnSweep(sw)
		}
		log.Debug("jointdiag sweep",
			"k", k, "energy", sw.Energy, "reduction", sw.Reduction, "rotations", sw.Rotations)

		threshold := opts.Tol
		if opts.Relative {
			threshold = opts.Tol * energy
		}
		energy = sw.Energy
		if sw.Reduction < threshold {
			res.Converged = true
			break
		}
	}
	if energy == 0 {
		res.Converged = true
	}

	if res.S, err = matrix.NewDenseFrom(w.dim, w.dim, w.s); err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	if res.N, err = matrix.NewDenseFrom(w.dim, w.dim, w.a[0]); err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	if res.D, err = matrix.NewDenseFrom(w.dim, w.dim, w.a[1]); err != nil {
		return nil, fmt.Errorf("Diagonalize: %w", err)
	}
	res.OffNAfter, res.OffDAfter = off(w.a[0], w.dim), off(w.a[1], w.dim)
	res.OffAfter = res.OffNAfter + res.OffDAfter
	switch {
	case res.OffAfter > 0:
		res.ReductionFactor = res.OffBefore / res.OffAfter
	case res.OffBefore > 0:
		res.ReductionFactor = math.Inf(1)
	default:
		res.ReductionFactor = 1
	}

	log.Info("jointdiag done",
		"sweeps", res.Iterations, "off_before", res.OffBefore, "off_after", res.OffAfter,
		"reduction_factor", res.ReductionFactor, "converged", res.Converged)
	if !res.Converged {
		log.Warn("jointdiag hit max_iter", "max_iter", opts.MaxIter, "energy", res.OffAfter)
	}

	return res, nil
}

// work holds row-major copies of the pair and the accumulated transform.
type work struct {
	dim int
	a   [2][]float64
	s   []float64
}

func newWork(n, d matrix.Matrix) (*work, error) {
	dim := n.Rows()
	w := &work{dim: dim, s: make([]float64, dim*dim)}
	for k, m := range []matrix.Matrix{n, d} {
		w.a[k] = make([]float64, dim*dim)
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, err
				}
				w.a[k][i*dim+j] = v
			}
		}
	}
	for i := 0; i < dim; i++ {
		w.s[i*dim+i] = 1
	}

	return w, nil
}

// sweep applies the best rotation to every pair p < q and reports the count
// of accepted rotations and the largest single gain.
func (w *work) sweep() Sweep {
	var sw Sweep
	n := w.dim
	for p := 0; p < n-1; p++ {
		for q := p + 1; q < n; q++ {
			var us, vs [2]float64
			var g00, g01, g11 float64
			for k := range w.a {
				a := w.a[k]
				u := (a[p*n+p] - a[q*n+q]) / 2
				v := (a[p*n+q] + a[q*n+p]) / 2
				us[k], vs[k] = u, v
				g00 += u * u
				g01 -= u * v
				g11 += v * v
			}
			phi := 0.5 * math.Atan2(2*g01, g00-g11)
			cphi, sphi := math.Cos(phi), math.Sin(phi)

			var gain float64
			for k := range us {
				t := us[k]*cphi - vs[k]*sphi
				gain += 2 * (t*t - us[k]*us[k])
			}
			if !(gain > 0) {
				continue
			}
			c, s := math.Cos(phi/2), math.Sin(phi/2)
			for k := range w.a {
				rotate(w.a[k], n, p, q, c, s)
			}
			rotateCols(w.s, n, p, q, c, s)
			sw.Rotations++
			sw.MaxGain = math.Max(sw.MaxGain, gain)
		}
	}

	return sw
}

// rotate performs A ← JᵀAJ for the plane rotation with
// col_p' = c·col_p − s·col_q and col_q' = s·col_p + c·col_q.
func rotate(a []float64, n, p, q int, c, s float64) {
	rotateCols(a, n, p, q, c, s)
	for j := 0; j < n; j++ {
		ap, aq := a[p*n+j], a[q*n+j]
		a[p*n+j] = c*ap - s*aq
		a[q*n+j] = s*ap + c*aq
	}
}

// rotateCols performs A ← AJ.
func rotateCols(a []float64, n, p, q int, c, s float64) {
	for i := 0; i < n; i++ {
		ap, aq := a[i*n+p], a[i*n+q]
		a[i*n+p] = c*ap - s*aq
		a[i*n+q] = s*ap + c*aq
	}
}

// off is Σ_{i≠j} a_ij² of a row-major n×n slice.
func off(a []float64, n int) float64 {
	var e float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				e += a[i*n+j] * a[i*n+j]
			}
		}
	}

	return e
}
