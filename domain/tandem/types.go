// Package tandem holds the tandem-repeat genotyping records browsed by the dashboard.
package tandem

import (
	"math"
	"strings"
)

// AlleleRecord is one sample allele at a repeat locus, with the locus metadata repeated on
// every row.
type AlleleRecord struct {
	Disease        string  `json:"disease" db:"disease"`
	Gene           string  `json:"gene" db:"gene"`
	Type           string  `json:"type" db:"type"`
	LocusStructure string  `json:"locus_structure" db:"locus_structure"`
	Inheritance    string  `json:"inheritance" db:"inheritance"`
	PathogenicMin  float64 `json:"pathogenic_min" db:"pathogenic_min"`
	PathogenicMax  float64 `json:"pathogenic_max" db:"pathogenic_max"`
	Sample         string  `json:"sample" db:"sample"`
	Sex            string  `json:"sex" db:"sex"`
	Count          int     `json:"count" db:"count"`
	Length         int     `json:"length" db:"length"`
	Allele         string  `json:"allele" db:"allele"`
	SampleAllele   string  `json:"sample_allele" db:"sample_allele"`
}

// MotifRecord is one position within a sample allele.
type MotifRecord struct {
	Disease      string `json:"disease" db:"disease"`
	SampleAllele string `json:"sample_allele" db:"sample_allele"`
	Pos          int    `json:"pos" db:"pos"`
	Motif        string `json:"motif" db:"motif"`
	Anno         string `json:"anno" db:"anno"`
}

// Annotated reports whether the position carries an annotation.
func (m MotifRecord) Annotated() bool {
	return !IsMissing(m.Anno)
}

// DeriveSampleAllele builds the sample-allele key for sources that do not carry one.
func DeriveSampleAllele(sample, allele string) string {
	return sample + "_" + allele
}

// IsMissing reports whether a raw cell is one of the spellings pandas read_csv treats as
// missing by default.
func IsMissing(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null":
		return true
	}
	return false
}

// HasPathogenicRange reports whether both bounds are present.
func (a AlleleRecord) HasPathogenicRange() bool {
	return !math.IsNaN(a.PathogenicMin) && !math.IsNaN(a.PathogenicMax)
}
