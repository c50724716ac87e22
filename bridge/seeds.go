// SPDX-License-Identifier: MIT

package bridge

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bridgenull/edges"
)

// Generator builds the edge set for one seed.
type Generator func(seed int64) (*edges.Set, error)

// SeedSummary aggregates converged fits across seeded runs.
type SeedSummary struct {
	Runs      int     `json:"runs" yaml:"runs"`
	Converged int     `json:"converged" yaml:"converged"`
	AlphaMean float64 `json:"alpha_mean" yaml:"alpha_mean"`
	AlphaStd  float64 `json:"alpha_std" yaml:"alpha_std"`
	RMean     float64 `json:"r_mean" yaml:"r_mean"`
	RStd      float64 `json:"r_std" yaml:"r_std"`
}

// RunSeeds runs one independent continuation per seed, in parallel.
// Result i belongs to seeds[i]. At most opts.Workers runs are in flight
// (≤ 0 means one per seed). The first error cancels the remaining runs and
// is returned; ctx is checked before each run starts.
func RunSeeds(ctx context.Context, seeds []int64, gen Generator, opts Options) ([]*Trace, error) {
	if len(seeds) == 0 || gen == nil {
		return nil, ErrNoSeeds
	}
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("RunSeeds: %w", err)
	}

	return runAll(ctx, len(seeds), opts, func(i int) (*edges.Set, error) {
		s, err := gen(seeds[i])
		if err != nil {
			return nil, fmt.Errorf("RunSeeds: seed %d: %w", seeds[i], err)
		}
		return s, nil
	})
}

// RunSets is RunSeeds over prepared sets: result i belongs to sets[i].
// Sets are only read, so one Set may appear more than once.
func RunSets(ctx context.Context, sets []*edges.Set, opts Options) ([]*Trace, error) {
	if len(sets) == 0 {
		return nil, ErrNoSeeds
	}
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("RunSets: %w", err)
	}

	return runAll(ctx, len(sets), opts, func(i int) (*edges.Set, error) {
		return sets[i], nil
	})
}

// runAll fans Run out over n positions with errgroup.
func runAll(ctx context.Context, n int, opts Options, set func(i int) (*edges.Set, error)) ([]*Trace, error) {
	out := make([]*Trace, n)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := set(i)
			if err != nil {
				return err
			}
			tr, err := Run(s, opts)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			out[i] = tr

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Summarize averages α and R_last over the traces whose fit converged.
// Statistics are NaN when no trace converged; the standard deviations use
// the n−1 denominator and are 0 for a single run.
func Summarize(traces []*Trace) SeedSummary {
	sum := SeedSummary{Runs: len(traces)}
	var alphas, rs []float64
	for _, tr := range traces {
		if tr == nil || !tr.Fit.Converged {
			continue
		}
		alphas = append(alphas, tr.Fit.Alpha)
		rs = append(rs, tr.RLast)
	}
	sum.Converged = len(alphas)
	sum.AlphaMean, sum.AlphaStd = meanStd(alphas)
	sum.RMean, sum.RStd = meanStd(rs)

	return sum
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) == 1 {
		return mean, 0
	}
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}

	return mean, math.Sqrt(std / float64(len(xs)-1))
}
