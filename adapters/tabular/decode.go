package tabular

import (
	"math"
	"strconv"
	"strings"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"
)

const (
	alleleTableName = "alleles"
	motifTableName  = "motifs"
)

// DecodeAlleles converts raw rows into allele records. sample_allele is optional and derived
// from sample and allele when absent or blank.
func DecodeAlleles(raw *RawTable) (tandem.AlleleTable, error) {
	if err := requireColumns(raw, alleleTableName, alleleColumns); err != nil {
		return nil, err
	}

	out := make(tandem.AlleleTable, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		line := raw.Line(i)
		count, err := parseInt(alleleTableName, line, ColCount, row[ColCount])
		if err != nil {
			return nil, err
		}
		length, err := parseInt(alleleTableName, line, ColLength, row[ColLength])
		if err != nil {
			return nil, err
		}
		pmin, err := parseFloat(alleleTableName, line, ColPathogenicMin, row[ColPathogenicMin])
		if err != nil {
			return nil, err
		}
		pmax, err := parseFloat(alleleTableName, line, ColPathogenicMax, row[ColPathogenicMax])
		if err != nil {
			return nil, err
		}

		rec := tandem.AlleleRecord{
			Disease:        row[ColDisease],
			Gene:           row[ColGene],
			Type:           row[ColType],
			LocusStructure: row[ColLocusStructure],
			Inheritance:    row[ColInheritance],
			PathogenicMin:  pmin,
			PathogenicMax:  pmax,
			Sample:         row[ColSample],
			Sex:            row[ColSex],
			Count:          count,
			Length:         length,
			Allele:         row[ColAllele],
			SampleAllele:   row[ColSampleAllele],
		}
		if rec.SampleAllele == "" {
			rec.SampleAllele = tandem.DeriveSampleAllele(rec.Sample, rec.Allele)
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeMotifs converts raw rows into motif records
func DecodeMotifs(raw *RawTable) (tandem.MotifTable, error) {
	if err := requireColumns(raw, motifTableName, motifColumns); err != nil {
		return nil, err
	}

	out := make(tandem.MotifTable, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		pos, err := parseInt(motifTableName, raw.Line(i), ColPos, row[ColPos])
		if err != nil {
			return nil, err
		}
		out = append(out, tandem.MotifRecord{
			Disease:      row[ColDisease],
			SampleAllele: row[ColSampleAllele],
			Pos:          pos,
			Motif:        row[ColMotif],
			Anno:         row[ColAnno],
		})
	}
	return out, nil
}

func requireColumns(raw *RawTable, table string, columns []string) error {
	for _, c := range columns {
		if !raw.HasColumn(c) {
			return core.NewMissingColumnError(table, c)
		}
	}
	return nil
}

// parseInt accepts integers and integral decimals such as "12.0", which pandas emits for
// integer columns that once held a missing value.
func parseInt(table string, line int, column, cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, core.NewMalformedCellError(table, line, column, cell)
	}
	return int(f), nil
}

func parseFloat(table string, line int, column, cell string) (float64, error) {
	if tandem.IsMissing(cell) {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, core.NewMalformedCellError(table, line, column, cell)
	}
	return f, nil
}
