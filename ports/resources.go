package ports

import (
	"context"

	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
)

// SignalSource provides read-only access to the raw per-epoch signal table.
type SignalSource interface {
	Load(ctx context.Context) ([]signal.Record, error)
}

// AggregateSource provides read-only access to one aggregate table
// (summary statistics or total variance), rows keyed by variable and state.
// Row order is owned by the resource and preserved by consumers.
type AggregateSource interface {
	Load(ctx context.Context) ([]hmm.AggregateRow, error)
}
