package tabular

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sleephmm/domain/core"
	"sleephmm/domain/hmm"
	"sleephmm/ports"
)

// AggregateSource loads one aggregate table (summary statistics or total
// variance) from a CSV/Excel file with columns: variable, state, value.
type AggregateSource struct {
	path string
	name string // resource name for error messages
}

// NewAggregateSource creates a file-backed aggregate source.
func NewAggregateSource(name, path string) *AggregateSource {
	return &AggregateSource{path: path, name: name}
}

var _ ports.AggregateSource = (*AggregateSource)(nil)

// Load reads and parses the aggregate table, preserving row order.
func (s *AggregateSource) Load(ctx context.Context) ([]hmm.AggregateRow, error) {
	header, rows, err := NewDataReader(s.path).ReadRows()
	if err != nil {
		return nil, err
	}

	variableIdx, stateIdx, valueIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "variable":
			variableIdx = i
		case "state":
			stateIdx = i
		case "value":
			valueIdx = i
		}
	}
	if variableIdx < 0 || stateIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%s table %s: expected columns variable, state, value", s.name, s.path)
	}

	out := make([]hmm.AggregateRow, 0, len(rows))
	for n, row := range rows {
		if len(row) == 0 {
			continue
		}
		if len(row) <= valueIdx || len(row) <= stateIdx || len(row) <= variableIdx {
			return nil, fmt.Errorf("%s table %s row %d: too few columns", s.name, s.path, n+2)
		}
		state, err := strconv.Atoi(strings.TrimSpace(row[stateIdx]))
		if err != nil {
			return nil, fmt.Errorf("%s table %s row %d: bad state: %w", s.name, s.path, n+2, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s table %s row %d: bad value: %w", s.name, s.path, n+2, err)
		}
		out = append(out, hmm.AggregateRow{
			Variable: core.VariableKey(strings.TrimSpace(strings.ToLower(row[variableIdx]))),
			State:    state,
			Value:    value,
		})
	}
	return out, nil
}
