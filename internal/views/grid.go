package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"strbrowser/domain/tandem"
	"strbrowser/internal/errors"
)

// Grid column names, in display order
const (
	GridSample = "sample"
	GridCount  = "count"
	GridLength = "length"
	GridAllele = "allele"
	GridSex    = "sex"
)

// GridColumns lists the data-grid columns in display order
var GridColumns = []string{GridSample, GridCount, GridLength, GridAllele, GridSex}

var numericColumns = map[string]bool{GridCount: true, GridLength: true}

// GridRow is one allele as shown in the data grid
type GridRow struct {
	Sample string `json:"sample"`
	Count  int    `json:"count"`
	Length int    `json:"length"`
	Allele string `json:"allele"`
	Sex    string `json:"sex"`
}

// Cells returns the row's values in GridColumns order
func (r GridRow) Cells() []string {
	return []string{r.Sample, strconv.Itoa(r.Count), strconv.Itoa(r.Length), r.Allele, r.Sex}
}

// GridQuery carries per-column filters and an optional sort. Text filters match a
// case-insensitive substring; numeric filters are "n", "lo-hi", "lo-" or "-hi". Sort names a
// column, with a leading "-" for descending.
type GridQuery struct {
	Filters map[string]string
	Sort    string
}

// Grid is the data-table panel
type Grid struct {
	Columns []string          `json:"columns"`
	Rows    []GridRow         `json:"rows"`
	Total   int               `json:"total"`
	Shown   int               `json:"shown"`
	Filters map[string]string `json:"filters,omitempty"`
	Sort    string            `json:"sort,omitempty"`
}

type numRange struct {
	lo, hi       int
	hasLo, hasHi bool
}

func (r numRange) contains(v int) bool {
	return (!r.hasLo || v >= r.lo) && (!r.hasHi || v <= r.hi)
}

// BuildGrid projects, filters and sorts the selection's allele rows
func BuildGrid(alleles tandem.AlleleTable, q GridQuery) (Grid, error) {
	textFilters := make(map[string]string)
	numFilters := make(map[string]numRange)
	for col, raw := range q.Filters {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !isGridColumn(col) {
			return Grid{}, errors.ValidationError(fmt.Sprintf("unknown grid column %q", col))
		}
		if numericColumns[col] {
			r, err := parseRange(raw)
			if err != nil {
				return Grid{}, errors.ValidationError(fmt.Sprintf("invalid %s filter %q", col, raw))
			}
			numFilters[col] = r
			continue
		}
		textFilters[col] = strings.ToLower(raw)
	}

	sortCol, desc := strings.TrimPrefix(q.Sort, "-"), strings.HasPrefix(q.Sort, "-")
	if sortCol != "" && !isGridColumn(sortCol) {
		return Grid{}, errors.ValidationError(fmt.Sprintf("unknown sort column %q", sortCol))
	}

	rows := make([]GridRow, 0, len(alleles))
	for _, a := range alleles {
		row := GridRow{Sample: a.Sample, Count: a.Count, Length: a.Length, Allele: a.Allele, Sex: a.Sex}
		if matches(row, textFilters, numFilters) {
			rows = append(rows, row)
		}
	}

	if sortCol != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return less(rows[j], rows[i], sortCol)
			}
			return less(rows[i], rows[j], sortCol)
		})
	}

	grid := Grid{
		Columns: GridColumns,
		Rows:    rows,
		Total:   len(alleles),
		Shown:   len(rows),
		Sort:    q.Sort,
	}
	if len(q.Filters) > 0 {
		grid.Filters = q.Filters
	}
	return grid, nil
}

func isGridColumn(col string) bool {
	for _, c := range GridColumns {
		if c == col {
			return true
		}
	}
	return false
}

func matches(row GridRow, text map[string]string, num map[string]numRange) bool {
	for col, needle := range text {
		if !strings.Contains(strings.ToLower(textValue(row, col)), needle) {
			return false
		}
	}
	for col, r := range num {
		if !r.contains(numValue(row, col)) {
			return false
		}
	}
	return true
}

func textValue(row GridRow, col string) string {
	switch col {
	case GridSample:
		return row.Sample
	case GridAllele:
		return row.Allele
	case GridSex:
		return row.Sex
	}
	return ""
}

func numValue(row GridRow, col string) int {
	if col == GridLength {
		return row.Length
	}
	return row.Count
}

func less(a, b GridRow, col string) bool {
	if numericColumns[col] {
		return numValue(a, col) < numValue(b, col)
	}
	return textValue(a, col) < textValue(b, col)
}

func parseRange(s string) (numRange, error) {
	var r numRange
	lo, hi, isRange := strings.Cut(s, "-")
	if !isRange {
		v, err := strconv.Atoi(s)
		if err != nil {
			return r, err
		}
		return numRange{lo: v, hi: v, hasLo: true, hasHi: true}, nil
	}
	if lo = strings.TrimSpace(lo); lo != "" {
		v, err := strconv.Atoi(lo)
		if err != nil {
			return r, err
		}
		r.lo, r.hasLo = v, true
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, err := strconv.Atoi(hi)
		if err != nil {
			return r, err
		}
		r.hi, r.hasHi = v, true
	}
	if !r.hasLo && !r.hasHi {
		return r, fmt.Errorf("empty range")
	}
	return r, nil
}
