package tandem

// AlleleTable is the immutable allele-count table, in source row order.
type AlleleTable []AlleleRecord

// MotifTable is the immutable motif table, in source row order.
type MotifTable []MotifRecord

// Diseases returns the distinct disease identifiers in first-appearance order.
func (t AlleleTable) Diseases() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t {
		if _, ok := seen[r.Disease]; ok {
			continue
		}
		seen[r.Disease] = struct{}{}
		out = append(out, r.Disease)
	}
	return out
}

// WhereDisease returns the rows whose disease equals d, preserving order. The result never
// aliases the receiver.
func (t AlleleTable) WhereDisease(d string) AlleleTable {
	out := AlleleTable{}
	for _, r := range t {
		if r.Disease == d {
			out = append(out, r)
		}
	}
	return out
}

// WhereDisease returns the rows whose disease equals d, preserving order.
func (t MotifTable) WhereDisease(d string) MotifTable {
	out := MotifTable{}
	for _, r := range t {
		if r.Disease == d {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the repeat counts of every row.
func (t AlleleTable) Counts() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = float64(r.Count)
	}
	return out
}

// SampleAlleleKeys returns the set of (disease, sample_allele) pairs in the table.
func (t AlleleTable) SampleAlleleKeys() map[[2]string]struct{} {
	keys := make(map[[2]string]struct{}, len(t))
	for _, r := range t {
		keys[[2]string{r.Disease, r.SampleAllele}] = struct{}{}
	}
	return keys
}

// Orphans counts motif rows whose sample allele has no allele row for the same disease.
func (t MotifTable) Orphans(alleles AlleleTable) int {
	keys := alleles.SampleAlleleKeys()
	n := 0
	for _, m := range t {
		if _, ok := keys[[2]string{m.Disease, m.SampleAllele}]; !ok {
			n++
		}
	}
	return n
}
