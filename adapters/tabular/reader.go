// Package tabular reads the opaque input resources (signal data, summary
// statistics, total variance) from CSV or Excel files. Files are read-only;
// row order is preserved exactly as stored.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into header + rows form.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
// based on the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRows reads the file into a header row and data rows.
func (r *DataReader) ReadRows() ([]string, [][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSV() ([]string, [][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("CSV file is empty: %s", r.filePath)
	}
	return rows[0], rows[1:], nil
}

func (r *DataReader) readExcel() ([]string, [][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("Excel file is empty: %s", r.filePath)
	}
	return rows[0], rows[1:], nil
}
