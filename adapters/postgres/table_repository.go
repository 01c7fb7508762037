package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"

	"strbrowser/domain/tandem"
	"strbrowser/ports"

	"github.com/jmoiron/sqlx"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// alleleRow mirrors the str_counts table; pathogenic bounds are nullable.
type alleleRow struct {
	ID             int             `db:"id"`
	Disease        string          `db:"disease"`
	Gene           string          `db:"gene"`
	Type           string          `db:"type"`
	LocusStructure string          `db:"locus_structure"`
	Inheritance    string          `db:"inheritance"`
	PathogenicMin  sql.NullFloat64 `db:"pathogenic_min"`
	PathogenicMax  sql.NullFloat64 `db:"pathogenic_max"`
	Sample         string          `db:"sample"`
	Sex            string          `db:"sex"`
	Count          int             `db:"count"`
	Length         int             `db:"length"`
	Allele         string          `db:"allele"`
	SampleAllele   string          `db:"sample_allele"`
}

type motifRow struct {
	ID           int    `db:"id"`
	Disease      string `db:"disease"`
	SampleAllele string `db:"sample_allele"`
	Pos          int    `db:"pos"`
	Motif        string `db:"motif"`
	Anno         string `db:"anno"`
}

// tableRepository implements ports.TableSource over two SQL tables
type tableRepository struct {
	db          *sqlx.DB
	alleleTable string
	motifTable  string
}

// NewTableRepository creates a SQL table source. Table names are interpolated into queries
// and must be plain identifiers.
func NewTableRepository(db *sqlx.DB, alleleTable, motifTable string) (ports.TableSource, error) {
	for _, name := range []string{alleleTable, motifTable} {
		if !identifierPattern.MatchString(name) {
			return nil, fmt.Errorf("invalid table name %q", name)
		}
	}
	return &tableRepository{db: db, alleleTable: alleleTable, motifTable: motifTable}, nil
}

// LoadAlleles reads every allele row in insertion order
func (r *tableRepository) LoadAlleles(ctx context.Context) (tandem.AlleleTable, error) {
	query := fmt.Sprintf(`SELECT
		id, disease, COALESCE(gene, '') AS gene, COALESCE("type", '') AS "type",
		COALESCE(locus_structure, '') AS locus_structure, COALESCE(inheritance, '') AS inheritance,
		pathogenic_min, pathogenic_max, COALESCE(sample, '') AS sample, COALESCE(sex, '') AS sex,
		"count", "length", COALESCE(allele, '') AS allele, COALESCE(sample_allele, '') AS sample_allele
	FROM %s ORDER BY id`, r.alleleTable)

	var rows []alleleRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load alleles from %s: %w", r.alleleTable, err)
	}

	out := make(tandem.AlleleTable, 0, len(rows))
	for _, row := range rows {
		rec := tandem.AlleleRecord{
			Disease:        row.Disease,
			Gene:           row.Gene,
			Type:           row.Type,
			LocusStructure: row.LocusStructure,
			Inheritance:    row.Inheritance,
			PathogenicMin:  nullToNaN(row.PathogenicMin),
			PathogenicMax:  nullToNaN(row.PathogenicMax),
			Sample:         row.Sample,
			Sex:            row.Sex,
			Count:          row.Count,
			Length:         row.Length,
			Allele:         row.Allele,
			SampleAllele:   row.SampleAllele,
		}
		if rec.SampleAllele == "" {
			rec.SampleAllele = tandem.DeriveSampleAllele(rec.Sample, rec.Allele)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadMotifs reads every motif row in insertion order
func (r *tableRepository) LoadMotifs(ctx context.Context) (tandem.MotifTable, error) {
	query := fmt.Sprintf(`SELECT
		id, disease, sample_allele, pos, COALESCE(motif, '') AS motif, COALESCE(anno, '') AS anno
	FROM %s ORDER BY id`, r.motifTable)

	var rows []motifRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load motifs from %s: %w", r.motifTable, err)
	}

	out := make(tandem.MotifTable, 0, len(rows))
	for _, row := range rows {
		out = append(out, tandem.MotifRecord{
			Disease:      row.Disease,
			SampleAllele: row.SampleAllele,
			Pos:          row.Pos,
			Motif:        row.Motif,
			Anno:         row.Anno,
		})
	}
	return out, nil
}

// Describe names the source tables
func (r *tableRepository) Describe() string {
	return fmt.Sprintf("%s(%s, %s)", r.db.DriverName(), r.alleleTable, r.motifTable)
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func nanToNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
