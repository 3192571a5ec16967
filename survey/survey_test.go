// SPDX-License-Identifier: MIT

package survey_test

import (
	"math"
	"strings"
	"testing"

	"github.com/psymetrika/factorboot/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalize covers the normalization rules shared by raw data and
// metadata: quotes stripped, case folded, punctuation collapsed.
func TestCanonicalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Q24_1":                   "q24_1",
		"Duration (in seconds)":   "duration_in_seconds",
		"nervous/stressed":        "nervous_stressed",
		"  Padded  Name  ":        "padded_name",
		"What’s your role?":       "whats_your_role",
		"already_canonical":       "already_canonical",
		"__lead_and_trail__":      "lead_and_trail",
		"Multiple---separators!!": "multiple_separators",
	}
	for in, want := range cases {
		assert.Equal(t, want, survey.Canonicalize(in), "Canonicalize(%q)", in)
	}
}

func TestNewTable_Validation(t *testing.T) {
	t.Parallel()

	_, err := survey.NewTable(nil, [][]float64{{1}})
	assert.ErrorIs(t, err, survey.ErrEmptyTable)

	_, err = survey.NewTable([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, survey.ErrRaggedRows)

	// "Q1" and "q1" collapse to the same canonical name.
	_, err = survey.NewTable([]string{"Q1", "q1"}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, survey.ErrDuplicateColumn)
}

func TestTable_SelectPreservesOrder(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2", "q3"},
		[][]float64{{1, 2, 3}, {4, 5, 6}},
	)
	require.NoError(t, err)

	sub, err := tbl.Select([]string{"q3", "q1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"q3", "q1"}, sub.Columns())

	v, err := sub.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v, "first selected column must be q3")

	_, err = tbl.Select([]string{"nope"})
	assert.ErrorIs(t, err, survey.ErrUnknownColumn)
}

func TestTable_ValidateBounds(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2"},
		[][]float64{{1, 5}, {3, survey.Missing()}},
	)
	require.NoError(t, err)
	require.NoError(t, tbl.ValidateBounds(1, 5), "missing cells are skipped")

	bad, err := survey.NewTable([]string{"q1"}, [][]float64{{7}})
	require.NoError(t, err)
	err = bad.ValidateBounds(1, 5)
	assert.ErrorIs(t, err, survey.ErrOutOfBounds)
	assert.Contains(t, err.Error(), "q1", "offending item must be named")
}

func TestImpute_MedianAndMean(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1"},
		[][]float64{{1}, {2}, {survey.Missing()}, {5}},
	)
	require.NoError(t, err)

	med, err := tbl.Impute(survey.StrategyMedian)
	require.NoError(t, err)
	v, err := med.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v, "median of {1,2,5}")

	mean, err := tbl.Impute(survey.StrategyMean)
	require.NoError(t, err)
	v, err = mean.At(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/3.0, v, 1e-12)
}

func TestImpute_DropAndUnknown(t *testing.T) {
	t.Parallel()

	tbl, err := survey.NewTable(
		[]string{"q1", "q2"},
		[][]float64{{1, 2}, {survey.Missing(), 4}},
	)
	require.NoError(t, err)

	dropped, err := tbl.Impute(survey.StrategyDrop)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped.Respondents())

	_, err = tbl.Impute(survey.Strategy(99))
	assert.ErrorIs(t, err, survey.ErrUnknownStrategy)

	_, err = survey.ParseStrategy("mode")
	assert.ErrorIs(t, err, survey.ErrUnknownStrategy)
}

func TestReadCSV_MissingMarkersAndHeader(t *testing.T) {
	t.Parallel()

	in := "Q1,Nervous/Stressed\n4,\n,text answer\n2,5\n"
	tbl, err := survey.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "nervous_stressed"}, tbl.Columns())
	require.Equal(t, 3, tbl.Respondents())

	v, err := tbl.At(0, 1)
	require.NoError(t, err)
	assert.True(t, survey.IsMissing(v), "blank cell must be missing, not zero")

	v, err = tbl.At(1, 1)
	require.NoError(t, err)
	assert.True(t, survey.IsMissing(v), "free text must be missing")

	v, err = tbl.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = survey.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, survey.ErrNoHeader)
}

func TestMissingMarker(t *testing.T) {
	t.Parallel()

	assert.True(t, survey.IsMissing(survey.Missing()))
	assert.True(t, math.IsNaN(survey.Missing()))
	assert.False(t, survey.IsMissing(0))
}
