// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"

	"github.com/psymetrika/factorboot/matrix"
)

// Params holds per-column z-score parameters fitted on one matrix. The same
// parameters can then standardize another matrix with matching columns, so a
// resampling run can reuse the full-sample scale.
type Params struct {
	Means []float64
	Stds  []float64
}

// FitStandardizer estimates column means and sample standard deviations.
// Columns may carry names for error reporting; pass nil to report indices.
//
// Errors: ErrZeroVariance (offending column named), plus shape errors from
// the matrix kernels.
// Complexity: O(r*c).
func FitStandardizer(X *matrix.Dense, cols []string) (*Params, error) {
	means, stds, err := matrix.ColumnStats(X)
	if err != nil {
		return nil, err
	}
	for j, sd := range stds {
		if sd == 0 {
			return nil, fmt.Errorf("column %s: %w", columnLabel(cols, j), ErrZeroVariance)
		}
	}

	return &Params{Means: means, Stds: stds}, nil
}

// columnLabel prefers the column name, falling back to the index.
func columnLabel(cols []string, j int) string {
	if j < len(cols) {
		return fmt.Sprintf("%q", cols[j])
	}

	return fmt.Sprintf("#%d", j)
}

// Transform applies (x - mean)/std column-wise, returning a new matrix.
// Errors: ErrParamsMismatch when the column counts disagree.
// Complexity: O(r*c).
func (p *Params) Transform(X *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, err
	}
	if X.Cols() != len(p.Means) || len(p.Means) != len(p.Stds) {
		return nil, fmt.Errorf("have %d columns, fitted %d: %w", X.Cols(), len(p.Means), ErrParamsMismatch)
	}

	var (
		r, c = X.Rows(), X.Cols()
		out  *matrix.Dense
		err  error
		v    float64
		i, j int
	)
	out, err = matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, err
			}
			if err = out.Set(i, j, (v-p.Means[j])/p.Stds[j]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Standardize is the one-shot convenience: fit on X, transform X.
func Standardize(X *matrix.Dense, cols []string) (*matrix.Dense, *Params, error) {
	p, err := FitStandardizer(X, cols)
	if err != nil {
		return nil, nil, err
	}
	Z, err := p.Transform(X)
	if err != nil {
		return nil, nil, err
	}

	return Z, p, nil
}
