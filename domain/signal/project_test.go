package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
)

func TestProjectColumnOrderAndLabelDrop(t *testing.T) {
	vars := []core.VariableKey{hmm.VarEEGMeanBeta, hmm.VarEOGMedianTheta, hmm.VarEMGMeanGamma}
	records := []Record{
		{
			Subject: "s01",
			Values: map[core.VariableKey]float64{
				hmm.VarEEGMeanBeta:    1.1,
				hmm.VarEEGLogBeta:     0.1,
				hmm.VarEOGMedianTheta: 2.2,
				hmm.VarEMGMeanGamma:   3.3,
			},
			Stage: "wake",
		},
		{
			Subject: "s02",
			Values: map[core.VariableKey]float64{
				hmm.VarEEGMeanBeta:    4.4,
				hmm.VarEOGMedianTheta: 5.5,
				hmm.VarEMGMeanGamma:   6.6,
			},
		},
		{
			Subject: "s01",
			Values: map[core.VariableKey]float64{
				hmm.VarEEGMeanBeta:    7.7,
				hmm.VarEOGMedianTheta: 8.8,
				hmm.VarEMGMeanGamma:   9.9,
			},
		},
	}

	matrix, err := Project(records, vars)
	require.NoError(t, err)

	// Subject column first, then canonical variables in order; the stage
	// label and the unselected alternate never make it into the matrix.
	assert.Equal(t, []string{"subject", "eeg_mean_beta", "eog_median_theta", "emg_mean_gamma"}, matrix.Columns)
	require.Len(t, matrix.Rows, 3)
	assert.Equal(t, []float64{1, 1.1, 2.2, 3.3}, matrix.Rows[0])
	assert.Equal(t, []float64{2, 4.4, 5.5, 6.6}, matrix.Rows[1])
	assert.Equal(t, []float64{1, 7.7, 8.8, 9.9}, matrix.Rows[2])
	assert.Equal(t, 2, matrix.Subjects())
}

func TestProjectMissingVariable(t *testing.T) {
	vars := []core.VariableKey{hmm.VarEEGMeanBeta, hmm.VarEOGMedianTheta, hmm.VarEMGMeanGamma}
	records := []Record{
		{Subject: "s01", Values: map[core.VariableKey]float64{hmm.VarEEGMeanBeta: 1.0}},
	}

	_, err := Project(records, vars)
	require.Error(t, err)
	assert.True(t, core.IsDataShapeError(err))
}
