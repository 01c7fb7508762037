package views

import (
	"math"
	"sort"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Axis titles of the repeat-size histogram
const (
	HistogramXTitle = "Motif count"
	HistogramYTitle = "Number of alleles"
)

// MaxHistogramBins bounds the bar count so a single outlying count cannot blow up the panel.
const MaxHistogramBins = 1000

// Bin is one histogram bar. Lower is inclusive; Upper is exclusive except for the last bin.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the repeat-size distribution panel
type Histogram struct {
	BinWidth int     `json:"bin_width"`
	Span     float64 `json:"span"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Bins     []Bin   `json:"bins"`
	Peak     int     `json:"peak"`
	XTitle   string  `json:"x_title"`
	YTitle   string  `json:"y_title"`
}

// BinCount is the number of bins for a count range and bin width: int((max-min)/width),
// capped at MaxHistogramBins.
func BinCount(min, max float64, binWidth int) int {
	if binWidth <= 0 {
		return 0
	}
	n := (max - min) / float64(binWidth)
	if n > MaxHistogramBins {
		return MaxHistogramBins
	}
	return int(n)
}

// BuildHistogram bins the repeat counts of the selection. The n = BinCount bins split
// [min, max] into equal spans so every allele is counted once. A selection whose bin count
// is not positive (all counts equal, or the width exceeds the range) is ErrDegenerateBins.
func BuildHistogram(disease string, alleles tandem.AlleleTable, binWidth int) (Histogram, error) {
	if len(alleles) == 0 {
		return Histogram{}, core.NewEmptySelectionError(disease)
	}

	x := alleles.Counts()
	sort.Float64s(x)
	min, max := x[0], x[len(x)-1]

	n := BinCount(min, max, binWidth)
	if n <= 0 {
		return Histogram{}, core.ErrDegenerateBins
	}

	dividers := make([]float64, n+1)
	floats.Span(dividers, min, max)
	// stat.Histogram bins are half-open; nudge the top edge so max falls in the last bin.
	dividers[n] = math.Nextafter(max, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	h := Histogram{
		BinWidth: binWidth,
		Span:     (max - min) / float64(n),
		Min:      min,
		Max:      max,
		Bins:     make([]Bin, n),
		XTitle:   HistogramXTitle,
		YTitle:   HistogramYTitle,
	}
	for i := range h.Bins {
		upper := dividers[i+1]
		if i == n-1 {
			upper = max
		}
		h.Bins[i] = Bin{Lower: dividers[i], Upper: upper, Count: int(counts[i])}
		if h.Bins[i].Count > h.Peak {
			h.Peak = h.Bins[i].Count
		}
	}
	return h, nil
}
