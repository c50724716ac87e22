// SPDX-License-Identifier: MIT

package weights

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// objective maps a coefficient vector to the cycle residual of its aggregate.
type objective func(w []float64) (float64, error)

// gradient estimates ∇f(w) by central differences (f(w+h·eᵢ) − f(w−h·eᵢ))/2h.
// Components run on up to workers goroutines when workers > 1; each one
// works on its own copy of w, so the result does not depend on scheduling.
func gradient(f objective, w []float64, h float64, workers int) ([]float64, error) {
	g := make([]float64, len(w))
	component := func(i int) error {
		probe := append([]float64(nil), w...)
		probe[i] = w[i] + h
		fp, err := f(probe)
		if err != nil {
			return fmt.Errorf("gradient: component %d: %w", i, err)
		}
		probe[i] = w[i] - h
		fm, err := f(probe)
		if err != nil {
			return fmt.Errorf("gradient: component %d: %w", i, err)
		}
		g[i] = (fp - fm) / (2 * h)
		if math.IsNaN(g[i]) || math.IsInf(g[i], 0) {
			return fmt.Errorf("gradient: component %d is %g: %w", i, g[i], ErrBadConfig)
		}

		return nil
	}

	if workers <= 1 {
		for i := range w {
			if err := component(i); err != nil {
				return nil, err
			}
		}

		return g, nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := range w {
		i := i
		eg.Go(func() error { return component(i) })
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return g, nil
}

func norm2(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}

	return math.Sqrt(s)
}
