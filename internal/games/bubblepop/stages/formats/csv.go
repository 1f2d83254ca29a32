package formats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// ParseCSV parses a comma-separated stage into a rows x cols matrix.
// The matrix is always usable: on a read error it is all empty and the
// error is returned alongside it.
func ParseCSV(data []byte, rows, cols int) ([][]core.Cell, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return core.EmptyMatrix(rows, cols), fmt.Errorf("csv read: %w", err)
	}

	m := make([][]core.Cell, 0, len(records))
	for _, rec := range records {
		row := make([]core.Cell, 0, len(rec))
		for _, field := range rec {
			row = append(row, ParseSymbol(field))
		}
		m = append(m, row)
	}
	return fit(m, rows, cols), nil
}

// WriteCSV writes cells in the format ParseCSV reads.
func WriteCSV(w io.Writer, cells [][]core.Cell) error {
	cw := csv.NewWriter(w)
	for _, row := range cells {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = string(c.Symbol())
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
