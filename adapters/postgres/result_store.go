package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sleephmm/domain/core"
	"sleephmm/domain/run"
	"sleephmm/ports"
)

// resultStore persists run results as one row per run, full artifact in a
// JSON payload column. Inserts only; a run ID is never overwritten.
type resultStore struct {
	db *sqlx.DB
}

// NewResultStore creates a Postgres-backed result store.
func NewResultStore(db *sqlx.DB) ports.ResultStore {
	return &resultStore{db: db}
}

func (s *resultStore) Save(ctx context.Context, result *run.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `INSERT INTO run_results (run_id, seed, iterations, burn_in, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.ExecContext(ctx, query,
		result.RunID.String(), result.Seed, result.Iterations, result.BurnIn,
		payload, result.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run result: %w", err)
	}
	return nil
}

func (s *resultStore) Get(ctx context.Context, runID core.RunID) (*run.Result, error) {
	query := `SELECT payload FROM run_results WHERE run_id = $1`

	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, runID.String()).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("run result", runID.String())
		}
		return nil, fmt.Errorf("failed to get run result: %w", err)
	}

	var result run.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run result: %w", err)
	}
	return &result, nil
}
