// SPDX-License-Identifier: MIT
// Package survey: the Table type — respondents × items storage with NaN as
// the one and only missing marker. Tables are built once per run and treated
// as immutable afterwards; every transform returns a fresh Table.

package survey

import (
	"fmt"
	"math"
	"sort"
)

// Missing is the canonical missing-value marker stored in table cells.
// It is a quiet NaN; use IsMissing for checks (NaN != NaN).
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Table holds raw survey responses: one row per respondent, one column per
// questionnaire item. Column names are canonicalized at construction.
type Table struct {
	cols  []string       // canonical item names, fixed order
	index map[string]int // canonical name → column position
	data  [][]float64    // row-major; NaN marks a missing response
}

// NewTable builds a Table from column names and respondent rows.
// Implementation:
//   - Stage 1: Validate non-empty shape and rectangularity.
//   - Stage 2: Canonicalize names; reject collisions (join would be ambiguous).
//   - Stage 3: Deep-copy rows so the Table owns its storage.
//
// Errors: ErrEmptyTable, ErrRaggedRows, ErrDuplicateColumn.
// Complexity: O(r*c).
func NewTable(cols []string, rows [][]float64) (*Table, error) {
	if len(cols) == 0 || len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	canon := make([]string, len(cols))
	index := make(map[string]int, len(cols))
	for j, name := range cols { // deterministic column order
		cn := Canonicalize(name)
		if _, dup := index[cn]; dup {
			return nil, fmt.Errorf("column %q: %w", cn, ErrDuplicateColumn)
		}
		canon[j] = cn
		index[cn] = j
	}

	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d: %w", i, ErrRaggedRows)
		}
		cp := make([]float64, len(row))
		copy(cp, row)
		data[i] = cp
	}

	return &Table{cols: canon, index: index, data: data}, nil
}

// Respondents returns the number of rows. Complexity: O(1).
func (t *Table) Respondents() int { return len(t.data) }

// Items returns the number of columns. Complexity: O(1).
func (t *Table) Items() int { return len(t.cols) }

// Columns returns a copy of the canonical column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)

	return out
}

// ColumnSet returns the canonical column names as a membership set.
// The metadata validator consumes this to check the mapping contract.
func (t *Table) ColumnSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.cols))
	for _, c := range t.cols {
		set[c] = struct{}{}
	}

	return set
}

// ColumnIndex resolves a canonical column name to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	j, ok := t.index[name]

	return j, ok
}

// At returns the cell for respondent row and column position col.
// The value may be the missing marker; callers check with IsMissing.
// Errors: ErrUnknownColumn for a bad column, ErrEmptyTable never (shape is
// validated at construction); out-of-range rows are reported as such.
func (t *Table) At(row, col int) (float64, error) {
	if row < 0 || row >= len(t.data) {
		return 0, fmt.Errorf("row %d: %w", row, ErrRaggedRows)
	}
	if col < 0 || col >= len(t.cols) {
		return 0, fmt.Errorf("col %d: %w", col, ErrUnknownColumn)
	}

	return t.data[row][col], nil
}

// Select projects the table onto the named columns, preserving the given
// order. Used to keep only the items the metadata mapping defines, exactly
// as the original study drops everything else before analysis.
// Errors: ErrUnknownColumn (offender named), ErrEmptyTable (no columns).
// Complexity: O(r*len(names)).
func (t *Table) Select(names []string) (*Table, error) {
	if len(names) == 0 {
		return nil, ErrEmptyTable
	}
	idx := make([]int, len(names))
	for k, name := range names {
		j, ok := t.index[Canonicalize(name)]
		if !ok {
			return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
		}
		idx[k] = j
	}

	rows := make([][]float64, len(t.data))
	for i, row := range t.data {
		out := make([]float64, len(idx))
		for k, j := range idx {
			out[k] = row[j]
		}
		rows[i] = out
	}

	cols := make([]string, len(names))
	for k, name := range names {
		cols[k] = Canonicalize(name)
	}

	return NewTable(cols, rows)
}

// ValidateBounds checks every finite cell against the inclusive ordinal
// range [lo, hi]. Missing cells are skipped — they are legitimate.
// Errors: ErrOutOfBounds with the respondent row and item named.
// Complexity: O(r*c).
func (t *Table) ValidateBounds(lo, hi float64) error {
	var i, j int
	for i = 0; i < len(t.data); i++ { // fixed i→j order
		for j = 0; j < len(t.cols); j++ {
			v := t.data[i][j]
			if IsMissing(v) {
				continue
			}
			if v < lo || v > hi {
				return fmt.Errorf("respondent %d, item %q, value %g: %w", i, t.cols[j], v, ErrOutOfBounds)
			}
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Imputation
// ---------------------------------------------------------------------------

// Strategy selects how Impute fills missing cells.
//
//   - StrategyMedian — per-item median of the observed values (robust default,
//     matches the original cleaning pipeline).
//   - StrategyMean   — per-item arithmetic mean of the observed values.
//   - StrategyDrop   — remove every respondent with at least one missing cell.
type Strategy int

const (
	// StrategyMedian fills missing cells with the per-item median.
	StrategyMedian Strategy = iota

	// StrategyMean fills missing cells with the per-item mean.
	StrategyMean

	// StrategyDrop removes respondents that have any missing cell.
	StrategyDrop
)

// ParseStrategy maps a configuration string onto a Strategy.
// Errors: ErrUnknownStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "median":
		return StrategyMedian, nil
	case "mean":
		return StrategyMean, nil
	case "drop":
		return StrategyDrop, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownStrategy)
	}
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyMedian:
		return "median"
	case StrategyMean:
		return "mean"
	case StrategyDrop:
		return "drop"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Impute returns a new Table with missing cells resolved by the strategy.
// A column that is entirely missing stays missing under median/mean — the
// construct aggregator's coverage threshold deals with it downstream.
// Errors: ErrUnknownStrategy, ErrEmptyTable (drop removed everyone).
// Complexity: O(r*c) plus O(r log r) per column for the median.
func (t *Table) Impute(strategy Strategy) (*Table, error) {
	switch strategy {
	case StrategyMedian, StrategyMean:
		fill := make([]float64, len(t.cols))
		for j := range t.cols { // deterministic column order
			fill[j] = t.columnFill(j, strategy)
		}
		rows := make([][]float64, len(t.data))
		for i, row := range t.data {
			out := make([]float64, len(row))
			for j, v := range row {
				if IsMissing(v) {
					out[j] = fill[j] // may itself be NaN for an all-missing column
				} else {
					out[j] = v
				}
			}
			rows[i] = out
		}

		return NewTable(t.cols, rows)

	case StrategyDrop:
		rows := make([][]float64, 0, len(t.data))
		for _, row := range t.data {
			complete := true
			for _, v := range row {
				if IsMissing(v) {
					complete = false
					break
				}
			}
			if complete {
				cp := make([]float64, len(row))
				copy(cp, row)
				rows = append(rows, cp)
			}
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("drop strategy removed all respondents: %w", ErrEmptyTable)
		}

		return NewTable(t.cols, rows)

	default:
		return nil, fmt.Errorf("%v: %w", strategy, ErrUnknownStrategy)
	}
}

// columnFill computes the median or mean of the observed values in column j.
// Returns the missing marker when nothing is observed.
func (t *Table) columnFill(j int, strategy Strategy) float64 {
	observed := make([]float64, 0, len(t.data))
	for i := range t.data {
		if v := t.data[i][j]; !IsMissing(v) {
			observed = append(observed, v)
		}
	}
	if len(observed) == 0 {
		return Missing()
	}

	if strategy == StrategyMean {
		var sum float64
		for _, v := range observed {
			sum += v
		}

		return sum / float64(len(observed))
	}

	// Median: sort a copy, average the middle pair for even counts.
	sort.Float64s(observed)
	mid := len(observed) / 2
	if len(observed)%2 == 1 {
		return observed[mid]
	}

	return (observed[mid-1] + observed[mid]) / 2
}
