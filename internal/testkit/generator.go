// Package testkit provides deterministic synthetic fixtures and fakes for
// exercising the run pipeline without real recordings or a real sampler.
package testkit

import (
	"fmt"
	"math/rand"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
)

// Per-state emission profiles for the synthetic recordings. Values are
// loosely calibrated to normalized channel power so derived aggregate tables
// look like the real ones.
var stageProfiles = map[string]map[core.VariableKey][2]float64{ // mean, sd
	"wake": {
		hmm.VarEEGMeanBeta:    {2.1, 0.4},
		hmm.VarEEGLogBeta:     {0.74, 0.15},
		hmm.VarEOGMedianTheta: {1.2, 0.3},
		hmm.VarEMGMeanGamma:   {2.8, 0.5},
	},
	"nrem": {
		hmm.VarEEGMeanBeta:    {0.9, 0.25},
		hmm.VarEEGLogBeta:     {-0.11, 0.2},
		hmm.VarEOGMedianTheta: {0.6, 0.2},
		hmm.VarEMGMeanGamma:   {1.1, 0.3},
	},
	"rem": {
		hmm.VarEEGMeanBeta:    {1.5, 0.3},
		hmm.VarEEGLogBeta:     {0.41, 0.18},
		hmm.VarEOGMedianTheta: {2.3, 0.4},
		hmm.VarEMGMeanGamma:   {0.4, 0.15},
	},
}

var stageOrder = []string{"wake", "nrem", "rem"}

// SignalGenerator produces deterministic synthetic scored sleep recordings.
type SignalGenerator struct {
	rng *rand.Rand
}

// NewSignalGenerator creates a generator with a fixed seed.
func NewSignalGenerator(seed int64) *SignalGenerator {
	return &SignalGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces epochs-per-subject records for the given number of
// subjects. Stage sequences follow a sticky Markov chain so transition
// structure is present in the data.
func (g *SignalGenerator) Generate(subjects, epochs int) []signal.Record {
	records := make([]signal.Record, 0, subjects*epochs)
	for subj := 1; subj <= subjects; subj++ {
		state := g.rng.Intn(len(stageOrder))
		for t := 0; t < epochs; t++ {
			if g.rng.Float64() > 0.8 {
				state = g.rng.Intn(len(stageOrder))
			}
			stage := stageOrder[state]
			values := make(map[core.VariableKey]float64, len(stageProfiles[stage]))
			for key, profile := range stageProfiles[stage] {
				values[key] = profile[0] + profile[1]*g.rng.NormFloat64()
			}
			records = append(records, signal.Record{
				Subject: core.SubjectID(fmt.Sprintf("s%02d", subj)),
				Values:  values,
				Stage:   stage,
			})
		}
	}
	return records
}

// AggregateTables returns hand-built summary and variance tables covering
// the full variable universe, usable directly by the hyperprior builder.
func AggregateTables() (summary, variance []hmm.AggregateRow) {
	for _, key := range hmm.Universe() {
		for state := 1; state <= 3; state++ {
			stage := stageOrder[state-1]
			profile := stageProfiles[stage][key]
			summary = append(summary, hmm.AggregateRow{Variable: key, State: state, Value: profile[0]})
			variance = append(variance, hmm.AggregateRow{Variable: key, State: state, Value: profile[1] * profile[1]})
		}
	}
	return summary, variance
}
