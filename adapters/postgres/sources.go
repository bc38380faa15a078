package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
	"sleephmm/ports"
)

// signalSource loads the per-epoch signal table from the signal_data table.
type signalSource struct {
	db *sqlx.DB
}

// NewSignalSource creates a Postgres-backed signal source.
func NewSignalSource(db *sqlx.DB) ports.SignalSource {
	return &signalSource{db: db}
}

type signalRow struct {
	Subject        string  `db:"subject"`
	EEGMeanBeta    float64 `db:"eeg_mean_beta"`
	EEGLogBeta     float64 `db:"eeg_log_beta"`
	EOGMedianTheta float64 `db:"eog_median_theta"`
	EMGMeanGamma   float64 `db:"emg_mean_gamma"`
	Stage          string  `db:"stage"`
}

func (s *signalSource) Load(ctx context.Context) ([]signal.Record, error) {
	query := `SELECT subject, eeg_mean_beta, eeg_log_beta, eog_median_theta, emg_mean_gamma,
		COALESCE(stage, '') AS stage
	FROM signal_data ORDER BY id`

	var rows []signalRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load signal data: %w", err)
	}

	records := make([]signal.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, signal.Record{
			Subject: core.SubjectID(row.Subject),
			Values: map[core.VariableKey]float64{
				hmm.VarEEGMeanBeta:    row.EEGMeanBeta,
				hmm.VarEEGLogBeta:     row.EEGLogBeta,
				hmm.VarEOGMedianTheta: row.EOGMedianTheta,
				hmm.VarEMGMeanGamma:   row.EMGMeanGamma,
			},
			Stage: row.Stage,
		})
	}
	return records, nil
}

// aggregateSource loads one aggregate table by name (summary_statistics or
// total_variance), preserving stored row order.
type aggregateSource struct {
	db    *sqlx.DB
	table string
}

// NewAggregateSource creates a Postgres-backed aggregate source for the
// named table.
func NewAggregateSource(db *sqlx.DB, table string) ports.AggregateSource {
	return &aggregateSource{db: db, table: table}
}

func (s *aggregateSource) Load(ctx context.Context) ([]hmm.AggregateRow, error) {
	if s.table != "summary_statistics" && s.table != "total_variance" {
		return nil, fmt.Errorf("unknown aggregate table: %s", s.table)
	}
	query := fmt.Sprintf(`SELECT variable, state, value FROM %s ORDER BY id`, s.table)

	var rows []hmm.AggregateRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.table, err)
	}
	return rows, nil
}
