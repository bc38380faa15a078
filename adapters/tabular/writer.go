package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"sleephmm/domain/hmm"
)

// WriteAggregateCSV writes an aggregate table to a CSV file with the
// variable, state, value columns the AggregateSource reads back.
func WriteAggregateCSV(path string, rows []hmm.AggregateRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"variable", "state", "value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Variable.String(),
			strconv.Itoa(row.State),
			strconv.FormatFloat(row.Value, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
