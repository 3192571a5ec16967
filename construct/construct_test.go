// SPDX-License-Identifier: MIT
package construct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psymetrika/factorboot/construct"
	"github.com/psymetrika/factorboot/metadata"
	"github.com/psymetrika/factorboot/survey"
)

// fixture builds a 4-respondent table with two multi-item constructs and a
// single-item one.
func fixture(t *testing.T) (*survey.Table, *metadata.Validated) {
	t.Helper()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2", "q3", "q4", "q5"},
		[][]float64{
			{1, 3, 2, 4, 5},
			{2, 4, 3, 3, 1},
			{5, 5, 1, 1, 2},
			{3, 1, 4, 2, 3},
		},
	)
	require.NoError(t, err)

	m := metadata.Mapping{
		{OldName: "q1", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
		{OldName: "q2", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
		{OldName: "q3", Feature: "trust", SubCluster: "b", Cluster: "rel"},
		{OldName: "q4", Feature: "trust", SubCluster: "b", Cluster: "rel"},
		{OldName: "q5", Feature: "strain", SubCluster: "c", Cluster: "stress"},
	}
	v, err := metadata.Validate(m, tbl.ColumnSet())
	require.NoError(t, err)

	return tbl, v
}

func TestAggregate_MeanScores(t *testing.T) {
	t.Parallel()

	tbl, v := fixture(t)
	res, err := construct.Aggregate(tbl, v)
	require.NoError(t, err)

	assert.Equal(t, []string{"warmth", "trust", "strain"}, res.Features)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Retained)
	assert.Zero(t, res.Dropped)
	require.Equal(t, 4, res.Scores.Rows())
	require.Equal(t, 3, res.Scores.Cols())

	got, err := res.Scores.Row(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, 5}, got, 1e-12)

	got, err = res.Scores.Row(3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, 3}, got, 1e-12)
}

func TestAggregate_SumStrategy(t *testing.T) {
	t.Parallel()

	tbl, v := fixture(t)
	res, err := construct.Aggregate(tbl, v, construct.WithStrategy(construct.Sum))
	require.NoError(t, err)

	got, err := res.Scores.Row(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 6, 5}, got, 1e-12)
}

// A missing item answer is skipped; the score averages over what was
// answered as long as coverage holds.
func TestAggregate_PartialAnswersAveraged(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2"},
		[][]float64{
			{4, survey.Missing()},
			{2, 2},
			{1, 3},
		},
	)
	require.NoError(t, err)

	m := metadata.Mapping{
		{OldName: "q1", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
		{OldName: "q2", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
	}
	v, err := metadata.Validate(m, tbl.ColumnSet())
	require.NoError(t, err)

	res, err := construct.Aggregate(tbl, v)
	require.NoError(t, err)

	got, atErr := res.Scores.At(0, 0)
	require.NoError(t, atErr)
	assert.InDelta(t, 4.0, got, 1e-12) // 1 of 2 answered meets the 0.5 default
}

func TestAggregate_DropsLowCoverageRespondents(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2"},
		[][]float64{
			{survey.Missing(), survey.Missing()},
			{2, 2},
			{1, 3},
			{4, survey.Missing()},
		},
	)
	require.NoError(t, err)

	m := metadata.Mapping{
		{OldName: "q1", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
		{OldName: "q2", Feature: "warmth", SubCluster: "a", Cluster: "rel"},
	}
	v, err := metadata.Validate(m, tbl.ColumnSet())
	require.NoError(t, err)

	res, err := construct.Aggregate(tbl, v, construct.WithMinCoverage(1))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, res.Retained)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, 2, res.Scores.Rows())
}

func TestAggregate_InsufficientCoverage(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1"},
		[][]float64{
			{survey.Missing()},
			{survey.Missing()},
			{1},
			{2},
		},
	)
	require.NoError(t, err)

	m := metadata.Mapping{{OldName: "q1", Feature: "warmth", SubCluster: "a", Cluster: "rel"}}
	v, err := metadata.Validate(m, tbl.ColumnSet())
	require.NoError(t, err)

	_, err = construct.Aggregate(tbl, v)
	require.ErrorIs(t, err, construct.ErrInsufficientCoverage)
	assert.Contains(t, err.Error(), "warmth")
}

func TestAggregate_UnknownColumn(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable([]string{"q1"}, [][]float64{{1}, {2}, {3}})
	require.NoError(t, err)

	m := metadata.Mapping{{OldName: "q9", Feature: "warmth", SubCluster: "a", Cluster: "rel"}}
	v, err := metadata.Validate(m, map[string]struct{}{"q9": {}})
	require.NoError(t, err)

	_, err = construct.Aggregate(tbl, v)
	assert.ErrorIs(t, err, survey.ErrUnknownColumn)
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	tbl, v := fixture(t)
	first, err := construct.Aggregate(tbl, v)
	require.NoError(t, err)
	second, err := construct.Aggregate(tbl, v)
	require.NoError(t, err)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Retained, second.Retained)
	assert.Equal(t, first.Features, second.Features)
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	s, err := construct.ParseStrategy("Sum")
	require.NoError(t, err)
	assert.Equal(t, construct.Sum, s)

	s, err = construct.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, construct.Mean, s)

	_, err = construct.ParseStrategy("median")
	assert.ErrorIs(t, err, construct.ErrUnknownStrategy)
}

func TestWithMinCoveragePanicsOnNonsense(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { construct.WithMinCoverage(0) })
	assert.Panics(t, func() { construct.WithMinCoverage(1.5) })
	assert.Panics(t, func() { construct.WithMinRespondents(0) })
}
