// SPDX-License-Identifier: MIT

package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a raw response export: a header row of item names followed
// by one row per respondent. Cells that are blank or non-numeric become the
// missing marker — never zero, so absent answers cannot masquerade as the
// lowest ordinal value.
//
// Column names are canonicalized via Canonicalize, mirroring what the
// metadata reader does with old_name.
//
// Errors: ErrNoHeader, ErrEmptyTable, ErrRaggedRows (via csv field checks),
// ErrDuplicateColumn; underlying csv parse errors are wrapped.
// Complexity: O(r*c).
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged detection is ours, with row context

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("survey: read header: %w", err)
	}

	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("survey: read row %d: %w", line, err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d: %w", line, len(rec), len(header), ErrRaggedRows)
		}
		row := make([]float64, len(rec))
		for j, cell := range rec {
			row[j] = parseCell(cell)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	return NewTable(header, rows)
}

// parseCell converts one CSV cell into a float64 or the missing marker.
func parseCell(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing() // free-text answers are not ordinal data
	}

	return v
}
