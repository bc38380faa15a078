package ports

import (
	"context"

	"sleephmm/domain/core"
	"sleephmm/domain/run"
)

// ResultStore persists run artifacts. Saves are write-once: a run ID is
// never overwritten, so concurrent chains writing to the same store are safe
// by construction.
type ResultStore interface {
	Save(ctx context.Context, result *run.Result) error
	Get(ctx context.Context, runID core.RunID) (*run.Result, error)
}
