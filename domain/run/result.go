package run

import (
	"encoding/json"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
)

// Result is the complete artifact of one estimation run. It carries the
// seed, starting values, priors and variable order alongside the fitted
// model so the run can be audited and reproduced. Immutable after
// construction; persisted exactly once.
type Result struct {
	RunID      core.RunID          `json:"run_id"`
	Seed       int64               `json:"seed"`
	Variables  []core.VariableKey  `json:"variables"`
	Iterations int                 `json:"iterations"`
	BurnIn     int                 `json:"burn_in"`
	Shape      hmm.Shape           `json:"shape"`
	Initial    hmm.InitialState    `json:"initial_values"`
	Priors     hmm.HyperpriorMeans `json:"priors"`
	Fitted     json.RawMessage     `json:"fitted_model"`
	CreatedAt  core.Timestamp      `json:"created_at"`
}

// NewResult assembles the run artifact.
func NewResult(runID core.RunID, cfg Config, seed int64, vars []core.VariableKey,
	shape hmm.Shape, initial hmm.InitialState, priors hmm.HyperpriorMeans,
	fitted json.RawMessage) *Result {

	return &Result{
		RunID:      runID,
		Seed:       seed,
		Variables:  vars,
		Iterations: cfg.Iterations,
		BurnIn:     cfg.BurnIn,
		Shape:      shape,
		Initial:    initial,
		Priors:     priors,
		Fitted:     fitted,
		CreatedAt:  core.Now(),
	}
}

// Validate checks the artifact is complete before persistence.
func (r *Result) Validate() error {
	if core.ID(r.RunID).IsEmpty() {
		return core.NewConfigurationError("result", "run_id cannot be empty")
	}
	if r.Seed == 0 {
		return core.NewConfigurationError("result", "seed cannot be zero")
	}
	if len(r.Variables) != r.Shape.NDep {
		return core.NewConfigurationError("result", "variable count does not match model shape")
	}
	if len(r.Fitted) == 0 {
		return core.NewConfigurationError("result", "fitted model cannot be empty")
	}
	return nil
}
