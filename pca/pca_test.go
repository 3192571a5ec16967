// SPDX-License-Identifier: MIT
package pca_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psymetrika/factorboot/matrix"
	"github.com/psymetrika/factorboot/pca"
)

const eps = 1e-8

// correlated is a 6×2 sample whose columns move together, giving a dominant
// first component near [1/√2, 1/√2].
func correlated(t *testing.T) *matrix.Dense {
	t.Helper()

	X, err := matrix.NewDenseFromRows([][]float64{
		{1.0, 1.1},
		{2.0, 1.9},
		{3.0, 3.2},
		{4.0, 3.8},
		{5.0, 5.1},
		{6.0, 5.9},
	})
	require.NoError(t, err)

	return X
}

func TestFitStandardizer_ZeroVarianceNamesColumn(t *testing.T) {
	t.Parallel()

	X, err := matrix.NewDenseFromRows([][]float64{
		{1, 7},
		{2, 7},
		{3, 7},
	})
	require.NoError(t, err)

	_, err = pca.FitStandardizer(X, []string{"warmth", "strain"})
	require.ErrorIs(t, err, pca.ErrZeroVariance)
	assert.Contains(t, err.Error(), "strain")
}

func TestStandardize_MeanZeroStdOne(t *testing.T) {
	t.Parallel()

	Z, params, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	require.Len(t, params.Means, 2)

	means, stds, err := matrix.ColumnStats(Z)
	require.NoError(t, err)
	for j := 0; j < 2; j++ {
		assert.InDelta(t, 0, means[j], eps)
		assert.InDelta(t, 1, stds[j], eps)
	}
}

func TestTransform_ColumnMismatch(t *testing.T) {
	t.Parallel()

	_, params, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)

	wide, err := matrix.NewDenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	_, err = params.Transform(wide)
	assert.ErrorIs(t, err, pca.ErrParamsMismatch)
}

// Reusing parameters fitted on one sample must reproduce the same affine
// map on new rows.
func TestTransform_ReusesFittedScale(t *testing.T) {
	t.Parallel()

	_, params, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)

	fresh, err := matrix.NewDenseFromRows([][]float64{{3.5, 3.5}})
	require.NoError(t, err)
	Z, err := params.Transform(fresh)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		got, atErr := Z.At(0, j)
		require.NoError(t, atErr)
		want := (3.5 - params.Means[j]) / params.Stds[j]
		assert.InDelta(t, want, got, eps)
	}
}

func TestFit_DominantComponentDirection(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	sol, err := pca.Fit(Z)
	require.NoError(t, err)

	require.Equal(t, 2, sol.Components())
	inv := 1 / math.Sqrt2
	a, err := sol.Loadings.At(0, 0)
	require.NoError(t, err)
	b, err := sol.Loadings.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, inv, a, 1e-3)
	assert.InDelta(t, inv, b, 1e-3)

	assert.Greater(t, sol.ExplainedVariance[0], 0.95)
}

func TestFit_LoadingsOrthonormal(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	sol, err := pca.Fit(Z)
	require.NoError(t, err)

	L := sol.Loadings
	for a := 0; a < L.Rows(); a++ {
		for b := 0; b < L.Rows(); b++ {
			var dot float64
			for j := 0; j < L.Cols(); j++ {
				va, atErr := L.At(a, j)
				require.NoError(t, atErr)
				vb, atErr := L.At(b, j)
				require.NoError(t, atErr)
				dot += va * vb
			}
			want := 0.0
			if a == b {
				want = 1.0
			}
			assert.InDelta(t, want, dot, eps, "rows %d·%d", a, b)
		}
	}
}

func TestFit_ExplainedVarianceSumsToOne(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	sol, err := pca.Fit(Z)
	require.NoError(t, err)

	var sum float64
	for _, r := range sol.ExplainedVariance {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, eps)

	// Descending order.
	for i := 1; i < len(sol.Eigenvalues); i++ {
		assert.GreaterOrEqual(t, sol.Eigenvalues[i-1], sol.Eigenvalues[i])
	}
}

func TestFit_SignConvention(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	sol, err := pca.Fit(Z)
	require.NoError(t, err)

	for row := 0; row < sol.Components(); row++ {
		var best float64
		for j := 0; j < sol.Loadings.Cols(); j++ {
			v, atErr := sol.Loadings.At(row, j)
			require.NoError(t, atErr)
			if math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		assert.GreaterOrEqual(t, best, 0.0, "component %d", row)
	}
}

func TestFit_ScoresAreProjections(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	sol, err := pca.Fit(Z, pca.WithComponents(1))
	require.NoError(t, err)

	require.Equal(t, 6, sol.Scores.Rows())
	require.Equal(t, 1, sol.Scores.Cols())

	for i := 0; i < Z.Rows(); i++ {
		var want float64
		for j := 0; j < Z.Cols(); j++ {
			z, atErr := Z.At(i, j)
			require.NoError(t, atErr)
			l, atErr := sol.Loadings.At(0, j)
			require.NoError(t, atErr)
			want += z * l
		}
		got, atErr := sol.Scores.At(i, 0)
		require.NoError(t, atErr)
		assert.InDelta(t, want, got, eps)
	}
}

func TestFit_TooManyComponents(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	_, err = pca.Fit(Z, pca.WithComponents(3))
	assert.ErrorIs(t, err, pca.ErrBadComponents)
}

func TestFit_Deterministic(t *testing.T) {
	t.Parallel()

	Z, _, err := pca.Standardize(correlated(t), nil)
	require.NoError(t, err)
	first, err := pca.Fit(Z)
	require.NoError(t, err)
	second, err := pca.Fit(Z)
	require.NoError(t, err)

	assert.Equal(t, first.Loadings, second.Loadings)
	assert.Equal(t, first.Eigenvalues, second.Eigenvalues)
	assert.Equal(t, first.Scores, second.Scores)
}

func TestFit_SingularInput(t *testing.T) {
	t.Parallel()

	flat, err := matrix.NewDenseFromRows([][]float64{
		{0, 0},
		{0, 0},
		{0, 0},
	})
	require.NoError(t, err)

	_, err = pca.Fit(flat)
	assert.ErrorIs(t, err, pca.ErrSingularInput)
}

// Identical columns are rank one: a full decomposition must refuse, a
// single component must succeed.
func TestFit_RankDeficientBelowRequest(t *testing.T) {
	t.Parallel()

	dup, err := matrix.NewDenseFromRows([][]float64{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
	})
	require.NoError(t, err)

	_, err = pca.Fit(dup, pca.WithComponents(2))
	assert.ErrorIs(t, err, pca.ErrSingularInput)

	sol, err := pca.Fit(dup, pca.WithComponents(1))
	require.NoError(t, err)
	assert.Equal(t, 1, sol.Components())
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { pca.WithComponents(0) })
	assert.Panics(t, func() { pca.WithTolerance(0) })
	assert.Panics(t, func() { pca.WithTolerance(math.NaN()) })
	assert.Panics(t, func() { pca.WithMaxIterations(0) })
}
