package views

import "strbrowser/domain/tandem"

// AlleleRow is an allele record with JSON-safe pathogenic bounds
type AlleleRow struct {
	Disease        string  `json:"disease"`
	Gene           string  `json:"gene"`
	Type           string  `json:"type"`
	LocusStructure string  `json:"locus_structure"`
	Inheritance    string  `json:"inheritance"`
	PathogenicMin  Measure `json:"pathogenic_min"`
	PathogenicMax  Measure `json:"pathogenic_max"`
	Sample         string  `json:"sample"`
	Sex            string  `json:"sex"`
	Count          int     `json:"count"`
	Length         int     `json:"length"`
	Allele         string  `json:"allele"`
	SampleAllele   string  `json:"sample_allele"`
}

func AlleleRows(alleles tandem.AlleleTable) []AlleleRow {
	out := make([]AlleleRow, len(alleles))
	for i, a := range alleles {
		out[i] = AlleleRow{
			Disease:        a.Disease,
			Gene:           a.Gene,
			Type:           a.Type,
			LocusStructure: a.LocusStructure,
			Inheritance:    a.Inheritance,
			PathogenicMin:  measureOf(a.PathogenicMin),
			PathogenicMax:  measureOf(a.PathogenicMax),
			Sample:         a.Sample,
			Sex:            a.Sex,
			Count:          a.Count,
			Length:         a.Length,
			Allele:         a.Allele,
			SampleAllele:   a.SampleAllele,
		}
	}
	return out
}
