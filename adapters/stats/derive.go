// Package stats derives the summary-statistic and total-variance tables from
// a scored signal table, so the aggregate resources a run consumes can be
// regenerated from raw data instead of maintained by hand.
package stats

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
)

// Stage labels recognized in the scored signal table, in latent-state order.
var stageOrder = []string{"wake", "nrem", "rem"}

// StateForStage maps a scored stage label to its 1-based latent state index.
func StateForStage(label string) (int, bool) {
	for i, s := range stageOrder {
		if s == label {
			return i + 1, true
		}
	}
	return 0, false
}

// Derived holds both regenerated aggregate tables, rows ordered
// variable-major (universe order) then by state.
type Derived struct {
	Summary       []hmm.AggregateRow
	TotalVariance []hmm.AggregateRow
}

// Derive computes per-variable per-state mean and variance aggregates from
// scored records. Values are rounded to two decimal places, matching what
// the hyperprior builder expects from the stored tables.
func Derive(ctx context.Context, records []signal.Record) (*Derived, error) {
	byState := make(map[int][]signal.Record, len(stageOrder))
	for i, rec := range records {
		state, ok := StateForStage(rec.Stage)
		if !ok {
			return nil, fmt.Errorf("record %d: unknown stage label %q", i, rec.Stage)
		}
		byState[state] = append(byState[state], rec)
	}
	for s := 1; s <= len(stageOrder); s++ {
		if len(byState[s]) < 2 {
			return nil, fmt.Errorf("stage %q: need at least 2 records, got %d", stageOrder[s-1], len(byState[s]))
		}
	}

	universe := hmm.Universe()
	summaries := make([][]hmm.AggregateRow, len(universe))
	variances := make([][]hmm.AggregateRow, len(universe))

	g, ctx := errgroup.WithContext(ctx)
	for i, key := range universe {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, v, err := deriveVariable(key, byState)
			if err != nil {
				return err
			}
			summaries[i] = s
			variances[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	derived := &Derived{}
	for i := range universe {
		derived.Summary = append(derived.Summary, summaries[i]...)
		derived.TotalVariance = append(derived.TotalVariance, variances[i]...)
	}
	return derived, nil
}

func deriveVariable(key core.VariableKey, byState map[int][]signal.Record) ([]hmm.AggregateRow, []hmm.AggregateRow, error) {
	summary := make([]hmm.AggregateRow, 0, len(stageOrder))
	variance := make([]hmm.AggregateRow, 0, len(stageOrder))
	for state := 1; state <= len(stageOrder); state++ {
		values := make([]float64, 0, len(byState[state]))
		for _, rec := range byState[state] {
			val, ok := rec.Values[key]
			if !ok {
				return nil, nil, fmt.Errorf("stage %q: record missing variable %s", stageOrder[state-1], key)
			}
			values = append(values, val)
		}

		mean, err := stats.Mean(values)
		if err != nil {
			return nil, nil, fmt.Errorf("mean of %s state %d: %w", key, state, err)
		}
		sampleVar, err := stats.SampleVariance(values)
		if err != nil {
			return nil, nil, fmt.Errorf("variance of %s state %d: %w", key, state, err)
		}
		roundedMean, _ := stats.Round(mean, 2)
		roundedVar, _ := stats.Round(sampleVar, 2)

		summary = append(summary, hmm.AggregateRow{Variable: key, State: state, Value: roundedMean})
		variance = append(variance, hmm.AggregateRow{Variable: key, State: state, Value: roundedVar})
	}
	return summary, variance, nil
}
