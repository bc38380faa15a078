package tabular

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/domain/signal"
	"sleephmm/ports"
)

// Expected column names in the signal table. Variable columns are matched
// against the fixed variable universe; unknown columns are ignored.
const (
	subjectColumn = "subject"
	stageColumn   = "stage"
)

// SignalSource loads the raw per-epoch signal table from a CSV/Excel file.
type SignalSource struct {
	path string
}

// NewSignalSource creates a file-backed signal source.
func NewSignalSource(path string) *SignalSource {
	return &SignalSource{path: path}
}

var _ ports.SignalSource = (*SignalSource)(nil)

// Load reads and parses the signal table.
func (s *SignalSource) Load(ctx context.Context) ([]signal.Record, error) {
	header, rows, err := NewDataReader(s.path).ReadRows()
	if err != nil {
		return nil, err
	}

	subjectIdx := -1
	stageIdx := -1
	varIdx := map[int]core.VariableKey{}
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		switch {
		case name == subjectColumn:
			subjectIdx = i
		case name == stageColumn:
			stageIdx = i
		case hmm.IsKnown(core.VariableKey(name)):
			varIdx[i] = core.VariableKey(name)
		}
	}
	if subjectIdx < 0 {
		return nil, fmt.Errorf("signal table %s: missing %q column", s.path, subjectColumn)
	}
	if len(varIdx) == 0 {
		return nil, fmt.Errorf("signal table %s: no known variable columns", s.path)
	}

	records := make([]signal.Record, 0, len(rows))
	for n, row := range rows {
		if len(row) == 0 {
			continue
		}
		rec := signal.Record{
			Subject: core.SubjectID(strings.TrimSpace(row[subjectIdx])),
			Values:  make(map[core.VariableKey]float64, len(varIdx)),
		}
		if stageIdx >= 0 && stageIdx < len(row) {
			rec.Stage = strings.TrimSpace(row[stageIdx])
		}
		for i, key := range varIdx {
			if i >= len(row) {
				return nil, fmt.Errorf("signal table %s row %d: missing value for %s", s.path, n+2, key)
			}
			val, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("signal table %s row %d: bad value for %s: %w", s.path, n+2, key, err)
			}
			rec.Values[key] = val
		}
		records = append(records, rec)
	}
	return records, nil
}
