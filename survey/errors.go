// SPDX-License-Identifier: MIT
// Package survey: sentinel error set. All failures surface these sentinels
// (possibly wrapped with cell/column context) and are matched via errors.Is.

package survey

import "errors"

var (
	// ErrEmptyTable indicates a table with no respondents or no items.
	ErrEmptyTable = errors.New("survey: empty table")

	// ErrRaggedRows indicates a row whose length differs from the header.
	ErrRaggedRows = errors.New("survey: ragged rows")

	// ErrDuplicateColumn indicates two columns collapsing to the same
	// canonical name. The join with metadata would be ambiguous.
	ErrDuplicateColumn = errors.New("survey: duplicate column after canonicalization")

	// ErrUnknownColumn indicates a referenced column that is not in the table.
	ErrUnknownColumn = errors.New("survey: unknown column")

	// ErrUnknownStrategy indicates an unrecognized imputation strategy.
	ErrUnknownStrategy = errors.New("survey: unknown imputation strategy")

	// ErrOutOfBounds indicates a finite cell value outside the declared
	// ordinal range (e.g. a 7 in a 1–5 Likert item).
	ErrOutOfBounds = errors.New("survey: value out of ordinal bounds")

	// ErrNoHeader indicates a CSV stream without a header row.
	ErrNoHeader = errors.New("survey: missing header row")
)
