package sampler

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
	"sleephmm/internal/testkit"
	"sleephmm/ports"
)

func fitRequestFixture(t *testing.T, seed int64) ports.FitRequest {
	t.Helper()
	shape := hmm.DefaultShape()
	vars := hmm.Canonicalize([]core.VariableKey{hmm.VarEEGMeanBeta})

	summary, variance := testkit.AggregateTables()
	initial, err := hmm.GenerateInitialState(rand.New(rand.NewSource(seed)), shape, vars, summary, variance)
	require.NoError(t, err)
	priors, err := hmm.BuildHyperpriors(vars, summary, shape)
	require.NoError(t, err)

	records := testkit.NewSignalGenerator(5).Generate(4, 60)
	matrix, err := signal.Project(records, vars)
	require.NoError(t, err)

	return ports.FitRequest{
		Data:       matrix,
		Transition: initial.Transition,
		Emission:   initial.Emission,
		Shape:      shape,
		Priors:     priors,
		Seed:       seed,
		Iterations: 40,
		BurnIn:     10,
	}
}

func TestGibbsFitProducesModel(t *testing.T) {
	g := NewGibbs()
	payload, err := g.Fit(context.Background(), fitRequestFixture(t, 21))
	require.NoError(t, err)

	var model FittedModel
	require.NoError(t, json.Unmarshal(payload, &model))
	assert.Equal(t, 4, model.Subjects)
	assert.Equal(t, 30, model.RetainedDraws)

	// The group transition matrix must still be row-stochastic.
	require.Len(t, model.GroupGamma, 3)
	for _, row := range model.GroupGamma {
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}

	occ := 0.0
	for _, p := range model.StateOccupancy {
		occ += p
	}
	assert.InDelta(t, 1.0, occ, 1e-9)
}

func TestGibbsFitDeterministicForSeed(t *testing.T) {
	g := NewGibbs()
	first, err := g.Fit(context.Background(), fitRequestFixture(t, 33))
	require.NoError(t, err)
	second, err := g.Fit(context.Background(), fitRequestFixture(t, 33))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGibbsFitRejectsReordering(t *testing.T) {
	g := NewGibbs()
	req := fitRequestFixture(t, 21)
	req.OrderData = true

	_, err := g.Fit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, core.IsSamplerError(err))
}

func TestGibbsFitRejectsEmptyData(t *testing.T) {
	g := NewGibbs()
	req := fitRequestFixture(t, 21)
	req.Data = signal.Matrix{}

	_, err := g.Fit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, core.IsSamplerError(err))
}

func TestGibbsFitRejectsAllBurnIn(t *testing.T) {
	g := NewGibbs()
	req := fitRequestFixture(t, 21)
	req.Iterations = 10
	req.BurnIn = 10

	_, err := g.Fit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, core.IsSamplerError(err))
}

func TestGroupBySubjectPreservesOrder(t *testing.T) {
	rows := [][]float64{
		{2, 1.0}, {2, 2.0}, {1, 3.0}, {2, 4.0},
	}
	sequences := groupBySubject(rows)
	require.Len(t, sequences, 2)
	assert.Equal(t, [][]float64{{1.0}, {2.0}, {4.0}}, sequences[0])
	assert.Equal(t, [][]float64{{3.0}}, sequences[1])
}

func TestSampleCategoricalBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0.0, math.SmallestNonzeroFloat64, 1.0}
	for i := 0; i < 100; i++ {
		got := sampleCategorical(rng, weights)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 3)
	}
}
