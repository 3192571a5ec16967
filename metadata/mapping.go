// SPDX-License-Identifier: MIT

package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/psymetrika/factorboot/survey"
)

// Entry is one row of the mapping table: a single questionnaire item and the
// construct it contributes to.
type Entry struct {
	OldName    string // canonical item id, must exist in the raw data
	Feature    string // construct name (many items → one feature)
	SubCluster string // fine-grained grouping label
	Cluster    string // coarse grouping label, consistent per feature
}

// Mapping is the raw, not-yet-validated list of entries in file order.
type Mapping []Entry

// Required header columns of a metadata CSV. Extra columns (the original
// files also carry a free-text "question" column) are ignored.
var requiredColumns = []string{"old_name", "cluster", "sub_cluster", "feature"}

// ReadCSV reads a metadata mapping table.
// Implementation:
//   - Stage 1: Read the header; locate the four required columns by
//     canonical name (order-independent, extras ignored).
//   - Stage 2: Read entries; canonicalize old_name exactly the way the
//     survey reader canonicalizes raw column names.
//
// Errors: ErrMissingColumns (missing names listed), ErrEmptyMapping;
// csv parse errors are wrapped.
// Complexity: O(rows).
func ReadCSV(r io.Reader) (Mapping, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyMapping
	}
	if err != nil {
		return nil, fmt.Errorf("metadata: read header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for j, name := range header {
		pos[survey.Canonicalize(name)] = j
	}
	var missing []string
	for _, req := range requiredColumns {
		if _, ok := pos[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingColumns)
	}

	var m Mapping
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("metadata: read row %d: %w", line, err)
		}
		m = append(m, Entry{
			OldName:    survey.Canonicalize(rec[pos["old_name"]]),
			Feature:    strings.TrimSpace(rec[pos["feature"]]),
			SubCluster: strings.TrimSpace(rec[pos["sub_cluster"]]),
			Cluster:    strings.TrimSpace(rec[pos["cluster"]]),
		})
	}
	if len(m) == 0 {
		return nil, ErrEmptyMapping
	}

	return m, nil
}
