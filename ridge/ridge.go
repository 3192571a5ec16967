// SPDX-License-Identifier: MIT

package ridge

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/psymetrika/factorboot/matrix"
)

// DefaultAlpha is the regularization strength used when callers have no
// reason to tune it.
const DefaultAlpha = 1.0

var (
	// ErrBadAlpha is returned for negative or non-finite regularization.
	ErrBadAlpha = errors.New("ridge: alpha must be finite, non-negative")

	// ErrLengthMismatch is returned when the target length differs from
	// the design-matrix row count.
	ErrLengthMismatch = errors.New("ridge: target length does not match rows")

	// ErrBadFraction is returned by Split for fractions outside (0, 1).
	ErrBadFraction = errors.New("ridge: test fraction must be in (0, 1)")
)

// Model is a fitted ridge regression.
type Model struct {
	Coefficients []float64
	Intercept    float64
	Alpha        float64
}

// Metrics reports goodness of fit on a held-out or training sample.
type Metrics struct {
	R2   float64
	RMSE float64
	MAE  float64
}

// Fit solves (XᵀX + αI)β = Xᵀy on centered data.
// Implementation:
//   - Stage 1: validate alpha and shapes, center X columns and y.
//   - Stage 2: closed-form solve via the LU inverse kernel.
//   - Stage 3: recover the intercept from the means.
//
// With α > 0 the system is positive definite, so the unpivoted LU solve is
// safe; α = 0 degrades to plain least squares and may return
// matrix.ErrSingular on collinear designs.
// Errors: ErrBadAlpha, ErrLengthMismatch, matrix.ErrSingular.
// Complexity: O(r·c² + c³).
func Fit(X *matrix.Dense, y []float64, alpha float64) (*Model, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return nil, ErrBadAlpha
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, err
	}
	if len(y) != X.Rows() {
		return nil, fmt.Errorf("have %d targets for %d rows: %w", len(y), X.Rows(), ErrLengthMismatch)
	}

	Xc, xMeans, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, err
	}
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(len(y))
	yc := make([]float64, len(y))
	for i, v := range y {
		yc[i] = v - yMean
	}

	Xt, err := matrix.Transpose(Xc)
	if err != nil {
		return nil, err
	}
	gram, err := matrix.Mul(Xt, Xc)
	if err != nil {
		return nil, err
	}
	ident, err := matrix.NewIdentity(X.Cols())
	if err != nil {
		return nil, err
	}
	penalty, err := matrix.Scale(ident, alpha)
	if err != nil {
		return nil, err
	}
	system, err := matrix.Add(gram, penalty)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(system)
	if err != nil {
		return nil, err
	}
	xty, err := matrix.MatVec(Xt, yc)
	if err != nil {
		return nil, err
	}
	beta, err := matrix.MatVec(inv, xty)
	if err != nil {
		return nil, err
	}

	intercept := yMean
	for j, b := range beta {
		intercept -= b * xMeans[j]
	}

	return &Model{Coefficients: beta, Intercept: intercept, Alpha: alpha}, nil
}

// Predict applies the model row-wise.
// Errors: shape errors from the matrix kernels.
func (m *Model) Predict(X *matrix.Dense) ([]float64, error) {
	pred, err := matrix.MatVec(X, m.Coefficients)
	if err != nil {
		return nil, err
	}
	for i := range pred {
		pred[i] += m.Intercept
	}

	return pred, nil
}

// Evaluate predicts on X and scores against y.
// Errors: ErrLengthMismatch plus kernel shape errors.
func (m *Model) Evaluate(X *matrix.Dense, y []float64) (Metrics, error) {
	if len(y) != X.Rows() {
		return Metrics{}, fmt.Errorf("have %d targets for %d rows: %w", len(y), X.Rows(), ErrLengthMismatch)
	}
	pred, err := m.Predict(X)
	if err != nil {
		return Metrics{}, err
	}

	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(len(y))

	var sse, sst, sae float64
	for i, v := range y {
		d := v - pred[i]
		sse += d * d
		sae += math.Abs(d)
		t := v - yMean
		sst += t * t
	}

	r2 := math.NaN()
	if sst > 0 {
		r2 = 1 - sse/sst
	}

	return Metrics{
		R2:   r2,
		RMSE: math.Sqrt(sse / float64(len(y))),
		MAE:  sae / float64(len(y)),
	}, nil
}

// Split shuffles row indices with the given source and cuts them into
// train and test sets. The split depends only on the source's seed and n.
// Errors: ErrBadFraction.
func Split(rng *rand.Rand, n int, testFrac float64) (train, test []int, err error) {
	if !(testFrac > 0 && testFrac < 1) {
		return nil, nil, ErrBadFraction
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	cut := int(math.Round(float64(n) * testFrac))
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		cut = n - 1
	}

	return idx[cut:], idx[:cut], nil
}
