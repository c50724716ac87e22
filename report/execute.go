// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/config"
	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/proportion"
	"github.com/katalvlaran/bridgenull/residual"
	"github.com/katalvlaran/bridgenull/weights"
)

const tracerName = "github.com/katalvlaran/bridgenull/report"

// Hooks are optional progress observers forwarded to the components.
type Hooks struct {
	OnSample    func(bridge.Sample)
	OnIteration func(weights.Iteration)
	OnSweep     func(jointdiag.Sweep)
}

// Execute runs the configured analysis for every seed and collects a Record.
//
// Per seed:
//  1. generate the edge set, condition it (prepare section) and take its
//     commutator diagnostics;
//  2. optionally jointly diagonalize it (jointdiag.enabled);
//  3. run the ε-continuation (all sets in parallel via bridge.RunSets);
//  4. probe the local sensitivity at R_last and the smallest ε, and the
//     ordered edge-product residual at the same point;
//  5. optionally tune the weights at R_last (weights.enabled);
//  6. test proportionality per edge and pairwise.
//
// Hooks may be called from several goroutines during step 3. Spans go to the
// global OpenTelemetry tracer provider (a no-op unless the caller installs one).
func Execute(ctx context.Context, cfg *config.Config, hooks Hooks, log *slog.Logger) (_ *Record, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "report.Execute")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "execute failed")
		}
		span.End()
	}()

	if cfg == nil {
		cfg = config.Default()
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Execute: %w", err)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rec := New(cfg)
	log = log.With("run_id", rec.RunID.String())
	span.SetAttributes(
		attribute.String("bridgenull.run_id", rec.RunID.String()),
		attribute.Int("bridgenull.runs", cfg.Runs),
		attribute.Int("bridgenull.dimension", cfg.Dimension),
		attribute.Int("bridgenull.edges", cfg.Edges),
	)

	seeds := cfg.Seeds()
	gen := cfg.Generator()
	sets := make([]*edges.Set, len(seeds))
	rec.Runs = make([]Run, len(seeds))
	for i, seed := range seeds {
		s, err := gen(seed)
		if err != nil {
			return nil, fmt.Errorf("Execute: seed %d: %w", seed, err)
		}
		run := &rec.Runs[i]
		run.Seed = seed
		if s, run.Prepared, err = prepare(s, cfg.Prepare); err != nil {
			return nil, fmt.Errorf("Execute: seed %d: %w", seed, err)
		}
		if run.Diagnostics, err = edges.CommutatorDiagnostics(s); err != nil {
			return nil, fmt.Errorf("Execute: seed %d: %w", seed, err)
		}
		if cfg.JointDiag.Enabled {
			jo := cfg.JointDiagOptions()
			jo.OnSweep, jo.Logger = hooks.OnSweep, log
			if s, run.JointDiag, err = jointdiag.ApplyToSet(s, jo); err != nil {
				return nil, fmt.Errorf("Execute: seed %d: %w", seed, err)
			}
		}
		sets[i] = s
	}

	opts, err := cfg.BridgeOptions()
	if err != nil {
		return nil, fmt.Errorf("Execute: %w", err)
	}
	opts.OnSample, opts.Logger = hooks.OnSample, log
	traces, err := bridge.RunSets(ctx, sets, opts)
	if err != nil {
		return nil, fmt.Errorf("Execute: %w", err)
	}
	span.AddEvent("continuation_done")

	for i := range rec.Runs {
		run := &rec.Runs[i]
		run.Trace = traces[i]
		if err := analyze(ctx, run, sets[i], cfg, opts, hooks, log); err != nil {
			return nil, fmt.Errorf("Execute: seed %d: %w", run.Seed, err)
		}
	}
	rec.Summary = bridge.Summarize(traces)
	span.SetAttributes(
		attribute.Int("bridgenull.converged", rec.Summary.Converged),
		attribute.Int("bridgenull.flagged_samples", rec.Flagged()),
	)
	span.SetStatus(codes.Ok, "analysis complete")
	log.Info("analysis complete",
		"runs", len(rec.Runs), "converged", rec.Summary.Converged,
		"alpha_mean", rec.Summary.AlphaMean, "flagged_samples", rec.Flagged())

	return rec, nil
}

// prepare applies the configured conditioning, regularization first.
func prepare(s *edges.Set, pc config.PrepareConfig) (*edges.Set, Prepared, error) {
	p := Prepared{Scale: 1}
	var err error
	if pc.RegularizeD {
		if s, p.Regularized, err = s.RegularizeD(); err != nil {
			return nil, p, err
		}
	}
	if pc.ScaleUniform {
		if s, p.Scale, err = s.ScaleUniform(); err != nil {
			return nil, p, err
		}
	}

	return s, p, nil
}

// analyze fills the post-continuation parts of run.
func analyze(ctx context.Context, run *Run, s *edges.Set, cfg *config.Config, opts bridge.Options, hooks Hooks, log *slog.Logger) (err error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "report.analyze",
		trace.WithAttributes(attribute.Int64("bridgenull.seed", run.Seed)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "analyze failed")
		}
		span.End()
	}()

	tr := run.Trace
	rStar := tr.RLast
	epsMin := tr.Samples[len(tr.Samples)-1].Epsilon
	nAgg, dAgg, err := s.Aggregate()
	if err != nil {
		return err
	}
	sens, err := bridge.LocalSensitivity(nAgg, dAgg, rStar, epsMin, opts.Norm, bridge.DefaultSensitivityH)
	if err != nil {
		return err
	}
	run.Sensitivity = &sens
	if run.Product, err = residual.EdgeProductResidual(s, rStar, epsMin, opts.Norm); err != nil {
		return err
	}

	if cfg.Weights.Enabled {
		wc := cfg.WeightsConfig()
		wc.OnIteration, wc.Logger = hooks.OnIteration, log
		if run.Weights, err = weights.Optimize(s, rStar, cfg.Weights.Epsilon, opts.Norm, wc); err != nil {
			return err
		}
	}

	if run.Proportion, err = proportion.EdgeReport(s); err != nil {
		return err
	}
	if run.PairwiseN, err = proportion.PairwiseN(s); err != nil {
		return err
	}

	return nil
}
