// Package signal models the per-epoch physiological signal table consumed by
// the sampler: one record per subject per 30-second epoch, with the derived
// channel aggregates and the (dropped before sampling) scored stage label.
package signal

import (
	"sleephmm/domain/core"
)

// Record is one epoch of signal aggregates for one subject.
type Record struct {
	Subject core.SubjectID               `json:"subject"`
	Values  map[core.VariableKey]float64 `json:"values"`
	Stage   string                       `json:"stage,omitempty"` // scored ground truth, never shown to the sampler
}

// Matrix is the numeric data matrix handed to the sampler: a subject index
// column followed by the canonical variable columns, in that exact order.
type Matrix struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Subjects returns the number of distinct subject indices in the matrix.
func (m Matrix) Subjects() int {
	seen := map[float64]bool{}
	for _, row := range m.Rows {
		if len(row) > 0 {
			seen[row[0]] = true
		}
	}
	return len(seen)
}
