package signal

import (
	"fmt"

	"sleephmm/domain/core"
)

// Project reduces the raw signal table to the matrix the sampler sees:
// subject index plus the canonical variables, in canonical order. Subjects
// are mapped to 1-based indices in first-appearance order so the matrix is
// fully numeric. The stage label is discarded here and never travels
// further.
func Project(records []Record, vars []core.VariableKey) (Matrix, error) {
	columns := make([]string, 0, len(vars)+1)
	columns = append(columns, "subject")
	for _, v := range vars {
		columns = append(columns, v.String())
	}

	subjectIdx := make(map[core.SubjectID]float64)
	rows := make([][]float64, 0, len(records))
	for i, rec := range records {
		idx, ok := subjectIdx[rec.Subject]
		if !ok {
			idx = float64(len(subjectIdx) + 1)
			subjectIdx[rec.Subject] = idx
		}
		row := make([]float64, 0, len(vars)+1)
		row = append(row, idx)
		for _, v := range vars {
			val, ok := rec.Values[v]
			if !ok {
				return Matrix{}, core.NewDataShapeError(
					fmt.Sprintf("signal_data row %d: missing %s", i, v), len(vars), len(rec.Values))
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return Matrix{Columns: columns, Rows: rows}, nil
}
