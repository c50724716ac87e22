// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bridgenull/bridge"
	"github.com/katalvlaran/bridgenull/config"
	"github.com/katalvlaran/bridgenull/edges"
	"github.com/katalvlaran/bridgenull/jointdiag"
	"github.com/katalvlaran/bridgenull/proportion"
	"github.com/katalvlaran/bridgenull/weights"
)

// Record is the complete, serializable outcome of one analysis.
type Record struct {
	RunID     uuid.UUID          `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	Config    *config.Config     `json:"config,omitempty" yaml:"config,omitempty"`
	Runs      []Run              `json:"runs" yaml:"runs"`
	Summary   bridge.SeedSummary `json:"summary" yaml:"summary"`
}

// Run holds the results for one seed.
type Run struct {
	Seed        int64                   `json:"seed" yaml:"seed"`
	Prepared    Prepared                `json:"prepared" yaml:"prepared"`
	Diagnostics edges.Diagnostics       `json:"diagnostics" yaml:"diagnostics"`
	JointDiag   *jointdiag.Result       `json:"joint_diag,omitempty" yaml:"joint_diag,omitempty"`
	Trace       *bridge.Trace           `json:"trace" yaml:"trace"`
	Sensitivity *bridge.Sensitivity     `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
	Product     float64                 `json:"product_residual" yaml:"product_residual"`
	Weights     *weights.Result         `json:"weights,omitempty" yaml:"weights,omitempty"`
	Proportion  []proportion.EdgeResult `json:"proportion" yaml:"proportion"`
	PairwiseN   [][]float64             `json:"pairwise_n" yaml:"pairwise_n"`
}

// Prepared records the conditioning applied to a generated Set.
type Prepared struct {
	Regularized int     `json:"regularized" yaml:"regularized"`
	Scale       float64 `json:"scale" yaml:"scale"`
}

// New returns an empty Record with a fresh random RunID.
func New(cfg *config.Config) *Record {
	return &Record{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
}

// Flagged counts samples across all runs that hit an invalid bracket or did not converge.
func (r *Record) Flagged() int {
	var n int
	for _, run := range r.Runs {
		if run.Trace != nil {
			n += len(run.Trace.Flagged())
		}
	}

	return n
}

// WriteYAML encodes r as a YAML document. NaN and ±Inf use YAML's .nan / .inf.
func (r *Record) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}

	return enc.Close()
}

// ReadYAML decodes a Record written by WriteYAML.
func ReadYAML(rd io.Reader) (*Record, error) {
	var r Record
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("ReadYAML: %w", err)
	}

	return &r, nil
}
