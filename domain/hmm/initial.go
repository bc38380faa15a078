package hmm

import (
	"fmt"
	"math/rand"

	"sleephmm/domain/core"
)

// EmissionJitter is the half-width of the uniform perturbation applied to
// every starting emission cell so that parallel chains started from the same
// tables do not collapse onto identical trajectories.
const EmissionJitter = 0.05

// InitialState bundles the randomized starting values for one chain.
type InitialState struct {
	Transition TransitionMatrix `json:"transition"`
	Emission   EmissionParams   `json:"emission"`
}

// GenerateInitialState builds a valid sampler starting state from the
// summary-statistic and total-variance tables. All randomness comes from the
// supplied generator; seeding it identically reproduces the state exactly.
//
// The transition row-sum check is defensive: the construction rule cannot
// produce an invalid row, so a failure here is a fatal defect.
func GenerateInitialState(rng *rand.Rand, shape Shape, vars []core.VariableKey,
	summary, variance []AggregateRow) (*InitialState, error) {

	transition := NewTransitionMatrix(shape.States, rng)
	if err := transition.ValidateRowSums(); err != nil {
		return nil, err
	}

	summaryIdx := indexAggregates(summary)
	varianceIdx := indexAggregates(variance)

	emission := make(EmissionParams, 0, len(vars))
	for _, v := range vars {
		values := make([][]float64, shape.States)
		for s := 1; s <= shape.States; s++ {
			mean, ok := summaryIdx[aggregateKey{v, s}]
			if !ok {
				return nil, core.NewDataShapeError(
					fmt.Sprintf("summary_statistics[%s, state %d]", v, s), 1, 0)
			}
			totalVar, ok := varianceIdx[aggregateKey{v, s}]
			if !ok {
				return nil, core.NewDataShapeError(
					fmt.Sprintf("total_variance[%s, state %d]", v, s), 1, 0)
			}
			values[s-1] = []float64{
				round2(mean) + jitter(rng),
				round2(totalVar) + jitter(rng),
			}
		}
		matrix, err := NewEmissionMatrix(v, values, shape)
		if err != nil {
			return nil, err
		}
		emission = append(emission, matrix)
	}

	return &InitialState{Transition: transition, Emission: emission}, nil
}

type aggregateKey struct {
	variable core.VariableKey
	state    int
}

func indexAggregates(rows []AggregateRow) map[aggregateKey]float64 {
	idx := make(map[aggregateKey]float64, len(rows))
	for _, row := range rows {
		idx[aggregateKey{row.Variable, row.State}] = row.Value
	}
	return idx
}

func jitter(rng *rand.Rand) float64 {
	return -EmissionJitter + rng.Float64()*2*EmissionJitter
}
