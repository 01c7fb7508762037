package dataset

import (
	"context"
	"time"

	"strbrowser/domain/core"
	"strbrowser/domain/tandem"
	"strbrowser/internal"
	"strbrowser/internal/errors"
	"strbrowser/ports"

	"golang.org/x/sync/errgroup"
)

// Catalog holds the two startup tables. It is immutable once loaded and safe for concurrent
// readers.
type Catalog struct {
	alleles  tandem.AlleleTable
	motifs   tandem.MotifTable
	diseases []string
	index    map[string]struct{}
	source   string
	loadedAt time.Time
	orphans  int
}

// Load reads both tables from source concurrently and builds the disease enumeration.
func Load(ctx context.Context, source ports.TableSource, logger *internal.Logger) (*Catalog, error) {
	start := time.Now()
	logger.Info("[Catalog] Loading tables from %s", source.Describe())

	var (
		alleles tandem.AlleleTable
		motifs  tandem.MotifTable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		alleles, err = source.LoadAlleles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		motifs, err = source.LoadMotifs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("[Catalog] Load failed: %v", err)
		return nil, errors.LoadFailed(source.Describe(), err)
	}

	if len(alleles) == 0 {
		return nil, errors.LoadFailed(source.Describe(), core.ErrEmptyTable)
	}

	c := New(alleles, motifs)
	c.source = source.Describe()
	c.loadedAt = time.Now()

	if c.orphans > 0 {
		logger.Warn("[Catalog] %d motif rows reference a sample allele with no allele row for the same disease", c.orphans)
	}
	logger.Info("[Catalog] Loaded %d allele rows, %d motif rows, %d diseases in %s",
		len(alleles), len(motifs), len(c.diseases), time.Since(start).Round(time.Millisecond))

	return c, nil
}

// New builds a catalog from already-decoded tables.
func New(alleles tandem.AlleleTable, motifs tandem.MotifTable) *Catalog {
	diseases := alleles.Diseases()
	index := make(map[string]struct{}, len(diseases))
	for _, d := range diseases {
		index[d] = struct{}{}
	}
	return &Catalog{
		alleles:  alleles,
		motifs:   motifs,
		diseases: diseases,
		index:    index,
		loadedAt: time.Now(),
		orphans:  motifs.Orphans(alleles),
	}
}

// Alleles returns the full allele table. Callers must not modify it.
func (c *Catalog) Alleles() tandem.AlleleTable { return c.alleles }

// Motifs returns the full motif table. Callers must not modify it.
func (c *Catalog) Motifs() tandem.MotifTable { return c.motifs }

// Diseases returns a copy of the disease enumeration in first-appearance order.
func (c *Catalog) Diseases() []string {
	out := make([]string, len(c.diseases))
	copy(out, c.diseases)
	return out
}

// DefaultDisease is the first enumerated disease, the selector's initial value.
func (c *Catalog) DefaultDisease() string {
	if len(c.diseases) == 0 {
		return ""
	}
	return c.diseases[0]
}

// HasDisease reports whether d is in the enumeration.
func (c *Catalog) HasDisease(d string) bool {
	_, ok := c.index[d]
	return ok
}

// Stats describes the loaded catalog for health output
type Stats struct {
	Source      string    `json:"source"`
	AlleleRows  int       `json:"allele_rows"`
	MotifRows   int       `json:"motif_rows"`
	Diseases    int       `json:"diseases"`
	OrphanMotif int       `json:"orphan_motif_rows"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Stats returns row counts and load metadata
func (c *Catalog) Stats() Stats {
	return Stats{
		Source:      c.source,
		AlleleRows:  len(c.alleles),
		MotifRows:   len(c.motifs),
		Diseases:    len(c.diseases),
		OrphanMotif: c.orphans,
		LoadedAt:    c.loadedAt,
	}
}
