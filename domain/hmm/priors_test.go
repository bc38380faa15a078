package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleephmm/domain/core"
)

func aggregateFixture(vars []core.VariableKey) []AggregateRow {
	var rows []AggregateRow
	for i, v := range vars {
		for s := 1; s <= 3; s++ {
			rows = append(rows, AggregateRow{Variable: v, State: s, Value: float64(i) + float64(s)/10})
		}
	}
	return rows
}

func TestBuildHyperpriorsPartitions(t *testing.T) {
	vars := Canonicalize([]core.VariableKey{VarEEGMeanBeta})
	shape := DefaultShape()

	// Include rows for the unselected alternate too; they must be filtered out.
	rows := aggregateFixture(Universe())

	priors, err := BuildHyperpriors(vars, rows, shape)
	require.NoError(t, err)
	require.Len(t, priors, 3)
	for _, vec := range priors {
		assert.Len(t, vec, shape.States)
	}

	// Blocks follow the table's row order post-filter: eeg_mean_beta first,
	// then the auxiliary channels.
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, priors[0])
	assert.Equal(t, []float64{2.1, 2.2, 2.3}, priors[1])
	assert.Equal(t, []float64{3.1, 3.2, 3.3}, priors[2])
}

func TestBuildHyperpriorsRounds(t *testing.T) {
	vars := Canonicalize([]core.VariableKey{VarEEGMeanBeta})
	rows := aggregateFixture(vars)
	rows[0].Value = 1.23456

	priors, err := BuildHyperpriors(vars, rows, DefaultShape())
	require.NoError(t, err)
	assert.Equal(t, 1.23, priors[0][0])
}

func TestBuildHyperpriorsShapeMismatch(t *testing.T) {
	vars := Canonicalize([]core.VariableKey{VarEEGMeanBeta})
	rows := aggregateFixture(vars)

	_, err := BuildHyperpriors(vars, rows[:7], DefaultShape())
	require.Error(t, err)
	assert.True(t, core.IsDataShapeError(err))
}
