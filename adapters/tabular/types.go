package tabular

// RawRowData represents a row of raw cells keyed by header
type RawRowData map[string]string

// RawTable represents a complete delimited or spreadsheet table
type RawTable struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
	Lines   []int        // 1-based source line of each row
}

// Line returns the source line of row i, falling back to its position below the header.
func (t *RawTable) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// HasColumn reports whether the header row contains name.
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column names of the allele-count table. Inheritance is capitalised in the consortium files.
const (
	ColDisease        = "disease"
	ColGene           = "gene"
	ColType           = "type"
	ColLocusStructure = "locus_structure"
	ColInheritance    = "Inheritance"
	ColPathogenicMin  = "pathogenic_min"
	ColPathogenicMax  = "pathogenic_max"
	ColSample         = "sample"
	ColSex            = "sex"
	ColCount          = "count"
	ColLength         = "length"
	ColAllele         = "allele"
	ColSampleAllele   = "sample_allele"
	ColPos            = "pos"
	ColMotif          = "motif"
	ColAnno           = "anno"
)

var alleleColumns = []string{
	ColDisease, ColGene, ColType, ColLocusStructure, ColInheritance, ColPathogenicMin,
	ColPathogenicMax, ColSample, ColSex, ColCount, ColLength, ColAllele,
}

var motifColumns = []string{ColDisease, ColSampleAllele, ColPos, ColMotif, ColAnno}
