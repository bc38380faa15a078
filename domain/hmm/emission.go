package hmm

import (
	"fmt"

	"sleephmm/domain/core"
)

// EmissionMatrix holds the per-state (mean, variance) starting values for
// one dependent variable: States rows, each [mean, variance].
type EmissionMatrix struct {
	Variable core.VariableKey `json:"variable"`
	Values   [][]float64      `json:"values"`
}

// NewEmissionMatrix asserts the fixed shape at construction time.
func NewEmissionMatrix(variable core.VariableKey, values [][]float64, shape Shape) (EmissionMatrix, error) {
	if len(values) != shape.States {
		return EmissionMatrix{}, core.NewInvariantViolationError("emission matrix shape",
			fmt.Sprintf("variable %s: expected %d state rows, got %d", variable, shape.States, len(values)))
	}
	for s, row := range values {
		if len(row) != 2 {
			return EmissionMatrix{}, core.NewInvariantViolationError("emission matrix shape",
				fmt.Sprintf("variable %s state %d: expected [mean, variance], got %d cells", variable, s+1, len(row)))
		}
	}
	return EmissionMatrix{Variable: variable, Values: values}, nil
}

// Mean returns the starting mean for a 1-based state index.
func (e EmissionMatrix) Mean(state int) float64 { return e.Values[state-1][0] }

// Variance returns the starting variance for a 1-based state index.
func (e EmissionMatrix) Variance(state int) float64 { return e.Values[state-1][1] }

// EmissionParams holds one emission matrix per canonical variable, in
// canonical variable order. The ordering must match HyperpriorMeans and the
// projected data matrix columns; misalignment silently corrupts the fit.
type EmissionParams []EmissionMatrix
