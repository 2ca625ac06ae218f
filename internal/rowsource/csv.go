// Package rowsource supplies tokenized statement rows. The statement
// extraction side (PDF text, column splitting) lives outside this
// module; what arrives here is already one text field per column.
package rowsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// FromCSV reads tokenized rows from CSV data. Records may have variable
// field counts; the importer validates the shape per row. Line numbers
// come from the reader for diagnostics.
func FromCSV(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []models.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, models.Row{Fields: record, Line: line})
	}
	return rows, nil
}

// FromFile reads tokenized rows from a CSV file.
func FromFile(path string) ([]models.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open row file %q: %w", path, err)
	}
	defer f.Close()

	rows, err := FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
