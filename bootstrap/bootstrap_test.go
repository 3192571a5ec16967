// SPDX-License-Identifier: MIT
package bootstrap_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psymetrika/factorboot/bootstrap"
	"github.com/psymetrika/factorboot/matrix"
)

// twoFactorPanel synthesizes 50 respondents over 6 constructs driven by two
// latent factors: constructs 0-2 load tightly on the first, 3-5 more
// loosely on the second, so the leading eigenvalues stay well separated
// after standardization. The generator seed is fixed, so every test sees
// the same panel.
func twoFactorPanel(t *testing.T) (*matrix.Dense, []string) {
	t.Helper()

	rng := rand.New(rand.NewSource(1234))
	rows := make([][]float64, 50)
	for i := range rows {
		u := rng.NormFloat64()
		v := rng.NormFloat64()
		rows[i] = []float64{
			u + 0.1*rng.NormFloat64(),
			u + 0.1*rng.NormFloat64(),
			u + 0.1*rng.NormFloat64(),
			v + 0.6*rng.NormFloat64(),
			v + 0.6*rng.NormFloat64(),
			v + 0.6*rng.NormFloat64(),
		}
	}
	X, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return X, []string{"warmth", "trust", "support", "strain", "burnout", "overload"}
}

func TestRun_ShapesAndBounds(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	a := bootstrap.New(
		bootstrap.WithIterations(200),
		bootstrap.WithSeed(42),
		bootstrap.WithComponents(3),
	)
	res, err := a.Run(context.Background(), X, features)
	require.NoError(t, err)

	assert.Equal(t, 200, res.Iterations)
	assert.Positive(t, res.Survived)
	assert.Equal(t, res.Iterations-res.Survived, res.Discarded())
	assert.GreaterOrEqual(t, res.DiscardRate(), 0.0)
	assert.LessOrEqual(t, res.DiscardRate(), 1.0)
	assert.Equal(t, features, res.Features)

	require.Len(t, res.Cells, 3)
	for _, row := range res.Cells {
		require.Len(t, row, len(features))
		for _, c := range row {
			assert.LessOrEqual(t, c.Lower, c.Upper)
			assert.GreaterOrEqual(t, c.SignRate, 0.0)
			assert.LessOrEqual(t, c.SignRate, 1.0)
		}
	}

	require.Len(t, res.Components, 3)
	for i, cs := range res.Components {
		assert.Equal(t, i, cs.Index)
		assert.LessOrEqual(t, cs.Explained.Lower, cs.Explained.Upper)
		assert.GreaterOrEqual(t, cs.NoFlipRate, 0.0)
		assert.LessOrEqual(t, cs.NoFlipRate, 1.0)
		assert.NotEqual(t, "unknown", cs.Verdict.String())
	}
}

// A panel with two strong latent factors must keep its leading component's
// salient signs put across resamples.
func TestRun_StrongStructureIsStable(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	a := bootstrap.New(
		bootstrap.WithIterations(200),
		bootstrap.WithSeed(42),
		bootstrap.WithComponents(2),
	)
	res, err := a.Run(context.Background(), X, features)
	require.NoError(t, err)

	lead := res.Components[0]
	assert.GreaterOrEqual(t, lead.SignRate, 0.95)
	assert.GreaterOrEqual(t, lead.NoFlipRate, 0.95)
	assert.Equal(t, bootstrap.Stable, lead.Verdict)
	assert.Greater(t, lead.Explained.Mean, 0.3)
}

func TestRun_SeedReproducible(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	opts := []bootstrap.Option{
		bootstrap.WithIterations(100),
		bootstrap.WithSeed(7),
		bootstrap.WithComponents(2),
	}

	first, err := bootstrap.New(opts...).Run(context.Background(), X, features)
	require.NoError(t, err)
	second, err := bootstrap.New(opts...).Run(context.Background(), X, features)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_WorkerCountDoesNotChangeResult(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	base := []bootstrap.Option{
		bootstrap.WithIterations(100),
		bootstrap.WithSeed(42),
		bootstrap.WithComponents(2),
	}

	serial, err := bootstrap.New(base...).Run(context.Background(), X, features)
	require.NoError(t, err)
	parallel, err := bootstrap.New(append(base, bootstrap.WithWorkers(4))...).Run(context.Background(), X, features)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRun_SeedChangesResamples(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	first, err := bootstrap.New(
		bootstrap.WithIterations(100),
		bootstrap.WithSeed(1),
		bootstrap.WithComponents(2),
	).Run(context.Background(), X, features)
	require.NoError(t, err)

	second, err := bootstrap.New(
		bootstrap.WithIterations(100),
		bootstrap.WithSeed(2),
		bootstrap.WithComponents(2),
	).Run(context.Background(), X, features)
	require.NoError(t, err)

	assert.NotEqual(t, first.Cells, second.Cells)
}

func TestRun_ReuseStandardization(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	base := []bootstrap.Option{
		bootstrap.WithIterations(100),
		bootstrap.WithSeed(42),
		bootstrap.WithComponents(2),
	}

	refit, err := bootstrap.New(base...).Run(context.Background(), X, features)
	require.NoError(t, err)
	reuse, err := bootstrap.New(append(base, bootstrap.WithStandardization(bootstrap.Reuse))...).
		Run(context.Background(), X, features)
	require.NoError(t, err)

	// Same reference fit, different resample scaling.
	assert.Equal(t, refit.Reference, reuse.Reference)
	assert.NotEqual(t, refit.Cells, reuse.Cells)
}

// An unreachable similarity threshold discards every iteration.
func TestRun_AllDiscarded(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	_, err := bootstrap.New(
		bootstrap.WithIterations(20),
		bootstrap.WithSeed(42),
		bootstrap.WithComponents(3),
		bootstrap.WithSimilarityThreshold(1),
	).Run(context.Background(), X, features)

	assert.ErrorIs(t, err, bootstrap.ErrAllDiscarded)
}

func TestRun_InputValidation(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	a := bootstrap.New(bootstrap.WithIterations(10))

	_, err := a.Run(context.Background(), nil, features)
	assert.ErrorIs(t, err, bootstrap.ErrNilInput)

	_, err = a.Run(context.Background(), X, features[:3])
	assert.ErrorIs(t, err, bootstrap.ErrFeatureCount)
}

func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	X, features := twoFactorPanel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bootstrap.New(bootstrap.WithIterations(50)).Run(ctx, X, features)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { bootstrap.WithIterations(0) })
	assert.Panics(t, func() { bootstrap.WithWorkers(0) })
	assert.Panics(t, func() { bootstrap.WithSimilarityThreshold(0) })
	assert.Panics(t, func() { bootstrap.WithSimilarityThreshold(1.1) })
	assert.Panics(t, func() { bootstrap.WithPercentiles(97.5, 2.5) })
	assert.Panics(t, func() { bootstrap.WithComponents(0) })
}
