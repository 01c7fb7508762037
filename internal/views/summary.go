package views

import (
	"math"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"

	"github.com/montanaflynn/stats"
)

// ValueBoxes are the six scalar displays above the plots
type ValueBoxes struct {
	Gene           string  `json:"gene"`
	Type           string  `json:"type"`
	LocusStructure string  `json:"locus_structure"`
	Inheritance    string  `json:"inheritance"`
	PathogenicMin  Measure `json:"pathogenic_min"`
	PathogenicMax  Measure `json:"pathogenic_max"`
}

// CountSummary describes the repeat counts of the selection
type CountSummary struct {
	Alleles int     `json:"alleles"`
	Samples int     `json:"samples"`
	Mean    Measure `json:"mean"`
	Median  Measure `json:"median"`
	Min     Measure `json:"min"`
	Max     Measure `json:"max"`
}

// Summary is the value-box panel
type Summary struct {
	Disease string       `json:"disease"`
	Boxes   ValueBoxes   `json:"value_boxes"`
	Counts  CountSummary `json:"counts"`
}

// Summarize fills the value boxes. Text boxes take the first row; pathogenic bounds are
// the mean over rows that have a value. An empty selection is ErrEmptySelection.
func Summarize(disease string, alleles tandem.AlleleTable) (Summary, error) {
	if len(alleles) == 0 {
		return Summary{}, core.NewEmptySelectionError(disease)
	}

	first := alleles[0]
	mins := make(stats.Float64Data, 0, len(alleles))
	maxs := make(stats.Float64Data, 0, len(alleles))
	samples := make(map[string]struct{})
	for _, a := range alleles {
		if !math.IsNaN(a.PathogenicMin) {
			mins = append(mins, a.PathogenicMin)
		}
		if !math.IsNaN(a.PathogenicMax) {
			maxs = append(maxs, a.PathogenicMax)
		}
		samples[a.Sample] = struct{}{}
	}

	counts := stats.Float64Data(alleles.Counts())
	mean, _ := counts.Mean()
	median, _ := counts.Median()
	min, _ := counts.Min()
	max, _ := counts.Max()

	return Summary{
		Disease: disease,
		Boxes: ValueBoxes{
			Gene:           first.Gene,
			Type:           first.Type,
			LocusStructure: first.LocusStructure,
			Inheritance:    first.Inheritance,
			PathogenicMin:  meanOrMissing(mins),
			PathogenicMax:  meanOrMissing(maxs),
		},
		Counts: CountSummary{
			Alleles: len(alleles),
			Samples: len(samples),
			Mean:    measureOf(mean),
			Median:  measureOf(median),
			Min:     measureOf(min),
			Max:     measureOf(max),
		},
	}, nil
}

func meanOrMissing(data stats.Float64Data) Measure {
	mean, err := stats.Mean(data)
	if err != nil {
		return Measure{}
	}
	return measureOf(mean)
}
