package views

import (
	"sort"

	"strbrowser/domain/tandem"
)

// Axis labels of the allele-sequence heatmap
const (
	HeatmapXLabel = "Position"
	HeatmapYLabel = "Alleles"
)

// NoMotif marks a heatmap cell with no motif record
const NoMotif = -1

// LegendEntry maps a motif to its code and colour
type LegendEntry struct {
	Motif string `json:"motif"`
	Code  int    `json:"code"`
	Color string `json:"color"`
}

// HeatmapRow is one sample allele. Codes and Colors align with Heatmap.Positions.
type HeatmapRow struct {
	SampleAllele string   `json:"sample_allele"`
	Annotated    int      `json:"annotated"`
	Codes        []int    `json:"codes"`
	Colors       []string `json:"colors"`
}

// Heatmap is the "waterfall" panel: motif codes by allele and position
type Heatmap struct {
	Positions []int         `json:"positions"`
	Rows      []HeatmapRow  `json:"rows"`
	Legend    []LegendEntry `json:"legend"`
	XLabel    string        `json:"x_label"`
	YLabel    string        `json:"y_label"`
}

// BuildHeatmap categorises motifs (codes follow the sorted motif names), orders alleles by
// descending number of annotated positions keeping first-appearance order on ties, and
// pivots to an allele x position grid. Empty motif cells are not categorised. When an
// allele repeats a position the later row wins.
func BuildHeatmap(motifs tandem.MotifTable) Heatmap {
	h := Heatmap{
		Positions: []int{},
		Rows:      []HeatmapRow{},
		Legend:    []LegendEntry{},
		XLabel:    HeatmapXLabel,
		YLabel:    HeatmapYLabel,
	}
	if len(motifs) == 0 {
		return h
	}

	codes := motifCodes(motifs)
	maxCode := float64(len(codes) - 1)
	// a record without a motif pulls the colour scale down to NoMotif
	minCode := 0.0

	type alleleAcc struct {
		first     int
		annotated int
		cells     map[int]int
	}
	accs := make(map[string]*alleleAcc)
	var order []string
	posSet := make(map[int]struct{})

	for i, m := range motifs {
		acc, ok := accs[m.SampleAllele]
		if !ok {
			acc = &alleleAcc{first: i, cells: make(map[int]int)}
			accs[m.SampleAllele] = acc
			order = append(order, m.SampleAllele)
		}
		if m.Annotated() {
			acc.annotated++
		}
		code := NoMotif
		if c, ok := codes[m.Motif]; ok {
			code = c
		} else {
			minCode = NoMotif
		}
		acc.cells[m.Pos] = code
		posSet[m.Pos] = struct{}{}
	}

	for p := range posSet {
		h.Positions = append(h.Positions, p)
	}
	sort.Ints(h.Positions)

	sort.SliceStable(order, func(i, j int) bool {
		return accs[order[i]].annotated > accs[order[j]].annotated
	})

	for _, sa := range order {
		acc := accs[sa]
		row := HeatmapRow{
			SampleAllele: sa,
			Annotated:    acc.annotated,
			Codes:        make([]int, len(h.Positions)),
			Colors:       make([]string, len(h.Positions)),
		}
		for j, p := range h.Positions {
			code, ok := acc.cells[p]
			if !ok {
				code = NoMotif
			}
			row.Codes[j] = code
			if code != NoMotif {
				row.Colors[j] = Viridis(normalize(float64(code), minCode, maxCode))
			}
		}
		h.Rows = append(h.Rows, row)
	}

	names := make([]string, len(codes))
	for motif, code := range codes {
		names[code] = motif
	}
	for code, motif := range names {
		h.Legend = append(h.Legend, LegendEntry{
			Motif: motif,
			Code:  code,
			Color: Viridis(normalize(float64(code), minCode, maxCode)),
		})
	}
	return h
}

// motifCodes assigns each distinct non-empty motif its index in sorted order.
func motifCodes(motifs tandem.MotifTable) map[string]int {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range motifs {
		if tandem.IsMissing(m.Motif) {
			continue
		}
		if _, ok := seen[m.Motif]; !ok {
			seen[m.Motif] = struct{}{}
			names = append(names, m.Motif)
		}
	}
	sort.Strings(names)
	codes := make(map[string]int, len(names))
	for i, n := range names {
		codes[n] = i
	}
	return codes
}
