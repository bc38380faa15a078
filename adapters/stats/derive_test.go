package stats

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/internal/testkit"
)

func TestDeriveFeedsHyperpriorBuilder(t *testing.T) {
	records := testkit.NewSignalGenerator(99).Generate(10, 200)

	derived, err := Derive(context.Background(), records)
	require.NoError(t, err)

	// 4 universe variables x 3 states per table.
	require.Len(t, derived.Summary, 12)
	require.Len(t, derived.TotalVariance, 12)

	for _, row := range derived.Summary {
		// Stored tables are rounded to two decimals; derived ones must match.
		assert.InDelta(t, row.Value, math.Round(row.Value*100)/100, 1e-12)
	}

	// The derived summary table must be directly consumable downstream.
	vars := hmm.Canonicalize([]core.VariableKey{hmm.VarEEGMeanBeta})
	priors, err := hmm.BuildHyperpriors(vars, derived.Summary, hmm.DefaultShape())
	require.NoError(t, err)
	require.Len(t, priors, 3)
}

func TestDeriveRowOrderIsVariableMajor(t *testing.T) {
	records := testkit.NewSignalGenerator(7).Generate(6, 150)

	derived, err := Derive(context.Background(), records)
	require.NoError(t, err)

	universe := hmm.Universe()
	for i, row := range derived.Summary {
		assert.Equal(t, universe[i/3], row.Variable)
		assert.Equal(t, i%3+1, row.State)
	}
}

func TestDeriveRejectsUnknownStage(t *testing.T) {
	records := testkit.NewSignalGenerator(3).Generate(2, 50)
	records[0].Stage = "n4"

	_, err := Derive(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage")
}

func TestStateForStage(t *testing.T) {
	state, ok := StateForStage("wake")
	require.True(t, ok)
	assert.Equal(t, 1, state)

	_, ok = StateForStage("unscored")
	assert.False(t, ok)
}
