// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms the PCA pipeline composes: column
//     centering, per-column moments, sample covariance, and row selection
//     (the bootstrap resampling primitive).
//
// Determinism & Performance:
//   - Fixed i→j traversal for all loops; flat row-major buffers throughout.
//   - Finiteness is validated up front so NaN/Inf never reach covariance.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opCenterColumns = "CenterColumns"
	opColumnStats   = "ColumnStats"
	opCovariance    = "Covariance"
	opSelectRows    = "SelectRows"
)

// CenterColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X non-nil and all-finite.
//   - Stage 2: Accumulate column sums in one deterministic pass, divide by r.
//   - Stage 3: Emit the centered copy.
//
// Returns the centered matrix and the column means (len = Cols).
// Errors: ErrNilMatrix, ErrNaNInf.
// Complexity: Time O(r*c), Space O(r*c) + O(c) means.
func CenterColumns(X *Dense) (*Dense, []float64, error) {
	if err := ValidateFinite(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	r, c := X.r, X.c
	means := make([]float64, c)
	var i, j, base int
	for i = 0; i < r; i++ { // deterministic row order
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += X.data[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	Xc, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			Xc.data[base+j] = X.data[base+j] - means[j]
		}
	}

	return Xc, means, nil
}

// ColumnStats computes per-column mean and sample standard deviation
// (denominator r-1). These are the standardization parameters the pca
// package fits on a respondent sample.
// Implementation:
//   - Stage 1: Validate X non-nil, all-finite, and r >= 2.
//   - Stage 2: CenterColumns for means, then accumulate squared residuals.
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrDimensionMismatch (r < 2).
// Complexity: Time O(r*c), Space O(c).
func ColumnStats(X *Dense) (means, stds []float64, err error) {
	if err = ValidateFinite(X); err != nil {
		return nil, nil, matrixErrorf(opColumnStats, err)
	}
	if X.r < 2 {
		return nil, nil, matrixErrorf(opColumnStats, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opColumnStats, err)
	}

	r, c := X.r, X.c
	sumsq := make([]float64, c)
	var i, j, base int
	var v float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			v = Xc.data[base+j]
			sumsq[j] += v * v
		}
	}
	stds = make([]float64, c)
	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(sumsq[j] * inv)
	}

	return means, stds, nil
}

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(r-1).
// Implementation:
//   - Stage 1: Validate X (finiteness via CenterColumns) and require r >= 2.
//   - Stage 2: Center columns once, then Cov via Transpose/Mul/Scale kernels.
//
// Behavior highlights:
//   - Symmetric output; diagonal equals per-column sample variances.
//   - Positive semi-definite on well-formed data (modulo numeric noise).
//
// Returns the c×c covariance matrix and the column means used for centering.
// Errors: ErrNilMatrix, ErrNaNInf, ErrDimensionMismatch (r < 2).
// Complexity: Time O(r*c + r*c²), Space O(c²).
func Covariance(X *Dense) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Cov, err := Scale(G, 1.0/float64(X.r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return Cov, means, nil
}

// SelectRows builds a new matrix whose row i is m's row idx[i], in order.
// Duplicate indices are allowed — a bootstrap resample drawn with replacement
// is exactly a SelectRows call with repeated indices.
// Errors: ErrNilMatrix, ErrBadShape (empty idx), ErrOutOfRange.
// Complexity: Time O(len(idx)*c), Space O(len(idx)*c).
func SelectRows(m *Dense, idx []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	if len(idx) == 0 {
		return nil, matrixErrorf(opSelectRows, ErrBadShape)
	}

	res, err := NewDense(len(idx), m.c)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	for i, src := range idx { // deterministic: output order follows idx
		if src < 0 || src >= m.r {
			return nil, matrixErrorf(opSelectRows, denseErrorf("Row", src, 0, ErrOutOfRange))
		}
		copy(res.data[i*m.c:(i+1)*m.c], m.data[src*m.c:(src+1)*m.c])
	}

	return res, nil
}
