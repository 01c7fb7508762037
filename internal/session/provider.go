package session

import (
	"strbrowser/domain/tandem"
	"strbrowser/internal/dataset"
)

// Provider derives the filtered allele and motif tables from a State. Each table is
// memoized on the disease it was computed for, so bin-width changes and repeated reads
// reuse the previous result.
type Provider struct {
	catalog *dataset.Catalog
	state   *State

	alleleKey  string
	alleles    tandem.AlleleTable
	alleleOK   bool
	motifKey   string
	motifs     tandem.MotifTable
	motifOK    bool
	recomputes int
}

// NewProvider creates a provider reading the given state
func NewProvider(catalog *dataset.Catalog, state *State) *Provider {
	return &Provider{catalog: catalog, state: state}
}

// FilteredData returns the allele rows of the selected disease in source order. The slice
// is shared with later reads and must not be modified.
func (p *Provider) FilteredData() tandem.AlleleTable {
	disease := p.state.Selection().Disease
	if !p.alleleOK || p.alleleKey != disease {
		p.alleles = p.catalog.Alleles().WhereDisease(disease)
		p.alleleKey = disease
		p.alleleOK = true
		p.recomputes++
	}
	return p.alleles
}

// FilteredMotif returns the motif rows of the selected disease in source order. The slice
// is shared with later reads and must not be modified.
func (p *Provider) FilteredMotif() tandem.MotifTable {
	disease := p.state.Selection().Disease
	if !p.motifOK || p.motifKey != disease {
		p.motifs = p.catalog.Motifs().WhereDisease(disease)
		p.motifKey = disease
		p.motifOK = true
		p.recomputes++
	}
	return p.motifs
}

// Recomputes counts cache misses across both tables
func (p *Provider) Recomputes() int {
	return p.recomputes
}
