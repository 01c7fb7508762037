package views

import (
	"encoding/json"
	"math"
	"testing"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSingleRow(t *testing.T) {
	alleles := tandem.AlleleTable{{
		Disease: "SCA2", Gene: "ATXN2", Type: "CAG", LocusStructure: "(CAG)n", Inheritance: "AD",
		PathogenicMin: 33, PathogenicMax: 200, Sample: "HG01", Count: 22,
	}}

	s, err := Summarize("SCA2", alleles)
	require.NoError(t, err)

	assert.Equal(t, ValueBoxes{
		Gene: "ATXN2", Type: "CAG", LocusStructure: "(CAG)n", Inheritance: "AD",
		PathogenicMin: Measure{Value: 33, Valid: true},
		PathogenicMax: Measure{Value: 200, Valid: true},
	}, s.Boxes)
	assert.Equal(t, 1, s.Counts.Alleles)
	assert.Equal(t, 1, s.Counts.Samples)
	assert.Equal(t, 22.0, s.Counts.Median.Value)
}

func TestSummarizeMeansSkipMissing(t *testing.T) {
	alleles := tandem.AlleleTable{
		{Gene: "HTT", PathogenicMin: 36, PathogenicMax: math.NaN(), Sample: "A", Count: 10},
		{Gene: "other", PathogenicMin: 40, PathogenicMax: math.NaN(), Sample: "A", Count: 20},
		{Gene: "other", PathogenicMin: math.NaN(), PathogenicMax: math.NaN(), Sample: "B", Count: 30},
	}

	s, err := Summarize("HD", alleles)
	require.NoError(t, err)
	assert.Equal(t, "HTT", s.Boxes.Gene, "text boxes read the first row")
	assert.Equal(t, 38.0, s.Boxes.PathogenicMin.Value)
	assert.False(t, s.Boxes.PathogenicMax.Valid)
	assert.Equal(t, 2, s.Counts.Samples)
	assert.Equal(t, 20.0, s.Counts.Mean.Value)
	assert.Equal(t, 10.0, s.Counts.Min.Value)
	assert.Equal(t, 30.0, s.Counts.Max.Value)

	body, err := json.Marshal(s.Boxes)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"pathogenic_max":null`)
	assert.Contains(t, string(body), `"pathogenic_min":38`)
}

func TestSummarizeEmptySelection(t *testing.T) {
	_, err := Summarize("DM1", tandem.AlleleTable{})
	assert.ErrorIs(t, err, core.ErrEmptySelection)
}

func TestMeasureString(t *testing.T) {
	tests := []struct {
		m    Measure
		want string
	}{
		{Measure{Value: 36, Valid: true}, "36"},
		{Measure{Value: 100, Valid: true}, "100"},
		{Measure{Value: 37.5, Valid: true}, "37.5"},
		{Measure{Value: 1.0 / 3, Valid: true}, "0.33"},
		{Measure{}, "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.String())
		})
	}
}

func TestAlleleRowsEncodeMissingBounds(t *testing.T) {
	rows := AlleleRows(tandem.AlleleTable{{Disease: "HD", PathogenicMin: 36, PathogenicMax: math.NaN(), Count: 17}})
	require.Len(t, rows, 1)

	body, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"pathogenic_min":36`)
	assert.Contains(t, string(body), `"pathogenic_max":null`)
}
