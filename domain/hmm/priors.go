package hmm

import (
	"math"

	"sleephmm/domain/core"
)

// HyperpriorMeans holds the prior mean emission value per variable per
// state: one vector of length Shape.States for each canonical variable, in
// canonical variable order.
type HyperpriorMeans [][]float64

// BuildHyperpriors derives the prior emission means from the summary
// statistics table. Rows are filtered to the canonical variables preserving
// the table's row order, rounded to two decimal places, and partitioned into
// contiguous per-variable blocks of length shape.States. A filtered row
// count other than shape.NDep * shape.States indicates a corrupt or
// mismatched resource.
func BuildHyperpriors(vars []core.VariableKey, rows []AggregateRow, shape Shape) (HyperpriorMeans, error) {
	wanted := make(map[core.VariableKey]bool, len(vars))
	for _, v := range vars {
		wanted[v] = true
	}

	var filtered []float64
	for _, row := range rows {
		if wanted[row.Variable] {
			filtered = append(filtered, round2(row.Value))
		}
	}

	want := shape.NDep * shape.States
	if len(filtered) != want {
		return nil, core.NewDataShapeError("summary_statistics", want, len(filtered))
	}

	means := make(HyperpriorMeans, shape.NDep)
	for i := 0; i < shape.NDep; i++ {
		means[i] = filtered[i*shape.States : (i+1)*shape.States]
	}
	return means, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
