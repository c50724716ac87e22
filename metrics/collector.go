// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/weights"
)

// Namespace prefixes every metric name.
const Namespace = "bridgenull"

// Collector turns component hooks into prometheus metrics. Its hook methods
// are safe for concurrent use.
type Collector struct {
	Samples         prometheus.Counter
	InvalidBrackets prometheus.Counter
	NotConverged    prometheus.Counter
	Expansions      prometheus.Counter
	Iterations      prometheus.Counter
	Backtracks      prometheus.Counter
	Sweeps          prometheus.Counter
	Rotations       prometheus.Counter
	LastResidual    prometheus.Gauge
	LastEpsilon     prometheus.Gauge
	LastR           prometheus.Gauge
	WeightsResidual prometheus.Gauge
	OffDiagEnergy   prometheus.Gauge
	SearchSteps     prometheus.Histogram
}

// New creates a Collector and registers it with reg (nil skips registration).
func New(reg prometheus.Registerer) (*Collector, error) {
	counter := func(sub, name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: Namespace, Subsystem: sub, Name: name, Help: help})
	}
	gauge := func(sub, name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: Namespace, Subsystem: sub, Name: name, Help: help})
	}
	c := &Collector{
		Samples:         counter("bridge", "samples_total", "Continuation samples recorded."),
		InvalidBrackets: counter("bridge", "invalid_brackets_total", "Samples whose bracket never enclosed an interior minimum."),
		NotConverged:    counter("bridge", "not_converged_total", "Samples whose search hit max_iter."),
		Expansions:      counter("bridge", "bracket_expansions_total", "Bracket doublings performed."),
		Iterations:      counter("weights", "iterations_total", "Weight optimizer iterations."),
		Backtracks:      counter("weights", "backtracks_total", "Step halvings in the weight optimizer."),
		Sweeps:          counter("jointdiag", "sweeps_total", "Joint diagonalization sweeps."),
		Rotations:       counter("jointdiag", "rotations_total", "Accepted Jacobi rotations."),
		LastResidual:    gauge("bridge", "last_residual", "Minimal residual of the latest sample."),
		LastEpsilon:     gauge("bridge", "last_epsilon", "Regularization of the latest sample."),
		LastR:           gauge("bridge", "last_r", "Bridge parameter of the latest sample."),
		WeightsResidual: gauge("weights", "residual", "Residual after the latest optimizer iteration."),
		OffDiagEnergy:   gauge("jointdiag", "off_diag_energy", "Off-diagonal energy after the latest sweep."),
		SearchSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "bridge",
			Name:      "search_steps",
			Help:      "Golden-section steps per sample.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
	}
	if reg != nil {
		for _, m := range c.all() {
			if err := reg.Register(m); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

func (c *Collector) all() []prometheus.Collector {
	return []prometheus.Collector{
		c.Samples, c.InvalidBrackets, c.NotConverged, c.Expansions,
		c.Iterations, c.Backtracks, c.Sweeps, c.Rotations,
		c.LastResidual, c.LastEpsilon, c.LastR, c.WeightsResidual, c.OffDiagEnergy,
		c.SearchSteps,
	}
}

// OnSample records a continuation sample; use as bridge.Options.OnSample.
func (c *Collector) OnSample(s bridge.Sample) {
	c.Samples.Inc()
	if !s.BracketValid {
		c.InvalidBrackets.Inc()
	}
	if !s.Converged {
		c.NotConverged.Inc()
	}
	c.Expansions.Add(float64(s.Expansions))
	c.SearchSteps.Observe(float64(s.Iterations))
	c.LastResidual.Set(s.Residual)
	c.LastEpsilon.Set(s.Epsilon)
	c.LastR.Set(s.R)
}

// OnIteration records an optimizer step; use as weights.Config.OnIteration.
func (c *Collector) OnIteration(it weights.Iteration) {
	c.Iterations.Inc()
	c.Backtracks.Add(float64(it.Backtracks))
	c.WeightsResidual.Set(it.Residual)
}

// OnSweep records a Jacobi sweep; use as jointdiag.Options.OnSweep.
func (c *Collector) OnSweep(s jointdiag.Sweep) {
	c.Sweeps.Inc()
	c.Rotations.Add(float64(s.Rotations))
	c.OffDiagEnergy.Set(s.Energy)
}

// Totals gathers g and returns one value per unlabeled metric family:
// the counter or gauge value, or the observation count of a histogram.
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(families))
	for _, mf := range families {
		var v float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				v += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				v += float64(m.GetHistogram().GetSampleCount())
			}
		}
		out[mf.GetName()] = v
	}

	return out, nil
}
