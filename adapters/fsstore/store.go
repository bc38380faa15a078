// Package fsstore persists run results as one JSON file per run under a
// fixed output directory. Writes are atomic (temp file + rename) and
// write-once; a run ID is never overwritten.
package fsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sleephmm/domain/core"
	"sleephmm/domain/run"
	"sleephmm/ports"
)

// Store implements ports.ResultStore on the local filesystem.
type Store struct {
	dir string
}

// New creates a file-backed result store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

var _ ports.ResultStore = (*Store)(nil)

// Path returns the artifact path for a run ID.
func (s *Store) Path(runID core.RunID) string {
	return filepath.Join(s.dir, runID.String()+".json")
}

// Save writes the result artifact. Exactly one file is written per
// successful run; an existing artifact for the same ID is an error.
func (s *Store) Save(ctx context.Context, result *run.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := s.Path(result.RunID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("result for run %s already exists at %s", result.RunID, path)
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+result.RunID.String()+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to publish artifact: %w", err)
	}
	return nil
}

// Get loads a persisted result by run ID.
func (s *Store) Get(ctx context.Context, runID core.RunID) (*run.Result, error) {
	payload, err := os.ReadFile(s.Path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("run result", runID.String())
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	var result run.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return &result, nil
}
