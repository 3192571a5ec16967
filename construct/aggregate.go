// SPDX-License-Identifier: MIT

package construct

import (
	"fmt"

	"github.com/psymetrika/factorboot/matrix"
	"github.com/psymetrika/factorboot/metadata"
	"github.com/psymetrika/factorboot/survey"
)

// Result is the outcome of aggregation: the respondent × construct score
// matrix plus the bookkeeping needed to trace rows and columns back to the
// raw table.
type Result struct {
	// Scores has one row per retained respondent and one column per
	// feature, in Features order.
	Scores *matrix.Dense

	// Features names the columns of Scores, in validated first-appearance
	// order.
	Features []string

	// Retained holds the original row indices of the surviving
	// respondents, ascending.
	Retained []int

	// Dropped counts respondents removed for an undefined score.
	Dropped int
}

// Aggregate scores every construct for every respondent.
// Implementation:
//   - Stage 1: resolve options; resolve each feature's item columns against
//     the table (single-item constructs pass the raw column through).
//   - Stage 2: per respondent, per feature: average (or sum) the
//     non-missing answers; mark the score undefined when the answered
//     fraction falls below MinCoverage.
//   - Stage 3: drop respondents with any undefined score; fail with
//     ErrInsufficientCoverage when fewer than MinRespondents survive.
//
// Determinism: fixed respondent (row) then feature (validated) order;
// bit-for-bit identical across runs on identical inputs.
// Errors: ErrNoFeatures, ErrInsufficientCoverage, survey.ErrUnknownColumn.
// Complexity: O(respondents × items).
func Aggregate(tbl *survey.Table, v *metadata.Validated, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	features := v.Features()
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}

	// Resolve item columns per feature up front so a bad mapping fails
	// before any scoring work.
	itemCols := make([][]int, len(features))
	for f, name := range features {
		items, err := v.Items(name)
		if err != nil {
			return nil, err
		}
		cols := make([]int, len(items))
		for i, item := range items {
			j, ok := tbl.ColumnIndex(item)
			if !ok {
				return nil, fmt.Errorf("construct: feature %s item %q: %w", name, item, survey.ErrUnknownColumn)
			}
			cols[i] = j
		}
		itemCols[f] = cols
	}

	var (
		n        = tbl.Respondents()
		retained = make([]int, 0, n)
		rows     = make([][]float64, 0, n)
		drops    = make([]int, len(features))
		row      []float64
		bad      int
	)
	for r := 0; r < n; r++ {
		row, bad = scoreRow(tbl, r, itemCols, o)
		if bad >= 0 {
			drops[bad]++

			continue
		}
		retained = append(retained, r)
		rows = append(rows, row)
	}

	if len(retained) < o.minRespondents {
		worst := 0
		for f := 1; f < len(drops); f++ {
			if drops[f] > drops[worst] {
				worst = f
			}
		}

		return nil, fmt.Errorf("construct: %d of %d respondents usable, need %d (feature %s dropped %d): %w",
			len(retained), n, o.minRespondents, features[worst], drops[worst], ErrInsufficientCoverage)
	}

	scores, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}

	return &Result{
		Scores:   scores,
		Features: features,
		Retained: retained,
		Dropped:  n - len(retained),
	}, nil
}

// scoreRow scores one respondent across all features. A non-negative return
// names the first feature whose score was undefined; -1 means the row is
// complete.
func scoreRow(tbl *survey.Table, r int, itemCols [][]int, o options) ([]float64, int) {
	row := make([]float64, len(itemCols))
	for f, cols := range itemCols {
		var (
			sum      float64
			answered int
		)
		for _, j := range cols {
			val, err := tbl.At(r, j)
			if err != nil || survey.IsMissing(val) {
				continue
			}
			sum += val
			answered++
		}
		if float64(answered) < o.minCoverage*float64(len(cols)) {
			return nil, f
		}
		switch o.strategy {
		case Sum:
			row[f] = sum
		default:
			row[f] = sum / float64(answered)
		}
	}

	return row, -1
}
