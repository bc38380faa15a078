package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"sleephmm/domain/core"
)

// Transition matrix construction constants.
const (
	// Self-transition probability is drawn uniformly from this range.
	// Sleep stages are sticky: staying in a stage is always more likely
	// than leaving it.
	DiagonalMin = 0.6
	DiagonalMax = 0.8

	// RowSumTolerance is the floating tolerance for the row-sum invariant.
	RowSumTolerance = 1e-9
)

// TransitionMatrix is an m x m latent-state transition probability matrix.
// Every row must sum to 1 within RowSumTolerance.
type TransitionMatrix struct {
	M    int         `json:"m"`
	Rows [][]float64 `json:"rows"`
}

// NewTransitionMatrix builds an initial transition matrix: the diagonal is
// drawn uniformly from [DiagonalMin, DiagonalMax] and the remaining mass of
// each row is split evenly across the off-diagonal cells.
func NewTransitionMatrix(m int, rng *rand.Rand) TransitionMatrix {
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		diag := DiagonalMin + rng.Float64()*(DiagonalMax-DiagonalMin)
		off := (1 - diag) / float64(m-1)
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			if i == j {
				row[j] = diag
			} else {
				row[j] = off
			}
		}
		rows[i] = row
	}
	return TransitionMatrix{M: m, Rows: rows}
}

// ValidateRowSums verifies that every row is a proper probability
// distribution. Construction guarantees this holds; a failure indicates a
// defect and is fatal, never silently corrected.
func (t TransitionMatrix) ValidateRowSums() error {
	if len(t.Rows) != t.M {
		return core.NewInvariantViolationError("transition row count",
			fmt.Sprintf("expected %d rows, got %d", t.M, len(t.Rows)))
	}
	for i, row := range t.Rows {
		if len(row) != t.M {
			return core.NewInvariantViolationError("transition row length",
				fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), t.M))
		}
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		if math.Abs(sum-1.0) > RowSumTolerance {
			return core.NewInvariantViolationError("transition row sum",
				fmt.Sprintf("row %d sums to %.12f", i, sum))
		}
	}
	return nil
}
