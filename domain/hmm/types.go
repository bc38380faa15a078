package hmm

import (
	"sleephmm/domain/core"
)

// Shape fixes the dimensions of the multilevel model.
type Shape struct {
	States int `json:"m"`     // number of latent sleep states
	NDep   int `json:"n_dep"` // number of dependent variables
}

// DefaultShape returns the production model shape: 3 latent states
// (wake, NREM, REM) observed through 3 dependent variables.
func DefaultShape() Shape {
	return Shape{States: 3, NDep: 3}
}

// AggregateRow is one row of an externally supplied aggregate table
// (summary statistics or total variance): one value per variable per state.
type AggregateRow struct {
	Variable core.VariableKey `json:"variable" db:"variable"`
	State    int              `json:"state" db:"state"` // 1-based latent state index
	Value    float64          `json:"value" db:"value"`
}
