package views

import (
	"testing"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allelesWithCounts(counts ...int) tandem.AlleleTable {
	out := make(tandem.AlleleTable, len(counts))
	for i, c := range counts {
		out[i] = tandem.AlleleRecord{Disease: "HD", Count: c}
	}
	return out
}

func TestHistogramWidthTwo(t *testing.T) {
	h, err := BuildHistogram("HD", allelesWithCounts(10, 12, 14, 14, 16), 2)
	require.NoError(t, err)

	assert.Equal(t, []Bin{
		{Lower: 10, Upper: 12, Count: 1},
		{Lower: 12, Upper: 14, Count: 1},
		{Lower: 14, Upper: 16, Count: 3},
	}, h.Bins)
	assert.Equal(t, 2.0, h.Span)
	assert.Equal(t, 3, h.Peak)
	assert.Equal(t, HistogramXTitle, h.XTitle)
}

func TestHistogramBinCount(t *testing.T) {
	counts := allelesWithCounts(10, 12, 14, 14, 16)
	tests := []struct {
		width int
		bins  int
	}{
		{1, 6},
		{2, 3},
		{3, 2},
		{4, 1},
		{6, 1},
	}
	for _, tt := range tests {
		h, err := BuildHistogram("HD", counts, tt.width)
		require.NoError(t, err)
		assert.Len(t, h.Bins, tt.bins, "width %d", tt.width)

		total := 0
		for _, b := range h.Bins {
			total += b.Count
		}
		assert.Equal(t, len(counts), total, "every allele lands in one bin at width %d", tt.width)
	}
}

func TestHistogramCapsOutlyingRange(t *testing.T) {
	assert.Equal(t, MaxHistogramBins, BinCount(0, 1e9, 1))
	assert.Equal(t, 6, BinCount(10, 16, 1))

	h, err := BuildHistogram("HD", allelesWithCounts(12, 15, 1_000_000_000), 1)
	require.NoError(t, err)
	require.Len(t, h.Bins, MaxHistogramBins)
	assert.InDelta(t, float64(1_000_000_000-12)/MaxHistogramBins, h.Span, 1e-6)
	assert.Equal(t, 2, h.Bins[0].Count)
	assert.Equal(t, 1, h.Bins[MaxHistogramBins-1].Count)
	assert.Equal(t, 1_000_000_000.0, h.Bins[MaxHistogramBins-1].Upper)
}

func TestHistogramDegenerate(t *testing.T) {
	_, err := BuildHistogram("HD", allelesWithCounts(14, 14, 14), 1)
	assert.ErrorIs(t, err, core.ErrDegenerateBins)

	_, err = BuildHistogram("HD", allelesWithCounts(10, 16), 7)
	assert.ErrorIs(t, err, core.ErrDegenerateBins)

	_, err = BuildHistogram("HD", tandem.AlleleTable{}, 1)
	assert.ErrorIs(t, err, core.ErrEmptySelection)
}

func TestHistogramUnsortedInput(t *testing.T) {
	h, err := BuildHistogram("HD", allelesWithCounts(16, 10, 14, 12, 14), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 3}, []int{h.Bins[0].Count, h.Bins[1].Count, h.Bins[2].Count})
}
