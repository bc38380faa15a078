package fsstore

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/run"
)

func resultFixture(t *testing.T) *run.Result {
	t.Helper()
	shape := hmm.DefaultShape()
	vars := hmm.Canonicalize([]core.VariableKey{hmm.VarEEGMeanBeta})

	var summary, variance []hmm.AggregateRow
	for i, v := range vars {
		for s := 1; s <= shape.States; s++ {
			summary = append(summary, hmm.AggregateRow{Variable: v, State: s, Value: float64(i + s)})
			variance = append(variance, hmm.AggregateRow{Variable: v, State: s, Value: 0.4})
		}
	}
	initial, err := hmm.GenerateInitialState(rand.New(rand.NewSource(11)), shape, vars, summary, variance)
	require.NoError(t, err)
	priors, err := hmm.BuildHyperpriors(vars, summary, shape)
	require.NoError(t, err)

	cfg := run.Config{Iterations: 100, BurnIn: 10, Variables: vars}
	return run.NewResult(core.RunID(core.NewID()), cfg, 12345, vars, shape, *initial, priors,
		json.RawMessage(`{"fitted":true}`))
}

func TestSaveGetRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	result := resultFixture(t)

	require.NoError(t, store.Save(ctx, result))

	loaded, err := store.Get(ctx, result.RunID)
	require.NoError(t, err)

	assert.Equal(t, result.RunID, loaded.RunID)
	assert.Equal(t, result.Seed, loaded.Seed)
	assert.Equal(t, result.Variables, loaded.Variables)
	assert.Equal(t, result.Iterations, loaded.Iterations)
	assert.Equal(t, result.BurnIn, loaded.BurnIn)
	assert.Equal(t, result.Initial, loaded.Initial)
	assert.Equal(t, result.Priors, loaded.Priors)
	assert.JSONEq(t, string(result.Fitted), string(loaded.Fitted))
}

func TestSaveIsWriteOnce(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	result := resultFixture(t)

	require.NoError(t, store.Save(ctx, result))
	err := store.Save(ctx, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSaveWritesExactlyOneFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Save(context.Background(), resultFixture(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetMissing(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Get(context.Background(), core.RunID("nope"))
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestSaveRejectsIncompleteResult(t *testing.T) {
	store := New(t.TempDir())
	result := resultFixture(t)
	result.Fitted = nil

	err := store.Save(context.Background(), result)
	require.Error(t, err)
}
