package postgres

import (
	"context"
	"fmt"

	"strbrowser/domain/tandem"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a Postgres database
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// CreateTables creates both tables if they do not exist. The DDL is valid for Postgres and
// SQLite.
func CreateTables(ctx context.Context, db *sqlx.DB, alleleTable, motifTable string) error {
	for _, name := range []string{alleleTable, motifTable} {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("invalid table name %q", name)
		}
	}

	ddl := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			disease TEXT NOT NULL,
			gene TEXT,
			"type" TEXT,
			locus_structure TEXT,
			inheritance TEXT,
			pathogenic_min DOUBLE PRECISION,
			pathogenic_max DOUBLE PRECISION,
			sample TEXT,
			sex TEXT,
			"count" INTEGER NOT NULL,
			"length" INTEGER NOT NULL,
			allele TEXT,
			sample_allele TEXT
		)`, alleleTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			disease TEXT NOT NULL,
			sample_allele TEXT NOT NULL,
			pos INTEGER NOT NULL,
			motif TEXT,
			anno TEXT
		)`, motifTable),
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// ImportTables replaces the contents of both tables in one transaction, keeping row order in
// the id column.
func ImportTables(ctx context.Context, db *sqlx.DB, alleleTable, motifTable string, alleles tandem.AlleleTable, motifs tandem.MotifTable) error {
	if err := CreateTables(ctx, db, alleleTable, motifTable); err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	for _, name := range []string{alleleTable, motifTable} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", name)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}

	insertAllele := fmt.Sprintf(`INSERT INTO %s (
		id, disease, gene, "type", locus_structure, inheritance, pathogenic_min, pathogenic_max,
		sample, sex, "count", "length", allele, sample_allele
	) VALUES (
		:id, :disease, :gene, :type, :locus_structure, :inheritance, :pathogenic_min, :pathogenic_max,
		:sample, :sex, :count, :length, :allele, :sample_allele
	)`, alleleTable)
	for i, a := range alleles {
		row := alleleRow{
			ID: i, Disease: a.Disease, Gene: a.Gene, Type: a.Type, LocusStructure: a.LocusStructure,
			Inheritance: a.Inheritance, PathogenicMin: nanToNull(a.PathogenicMin),
			PathogenicMax: nanToNull(a.PathogenicMax), Sample: a.Sample, Sex: a.Sex,
			Count: a.Count, Length: a.Length, Allele: a.Allele, SampleAllele: a.SampleAllele,
		}
		if _, err := tx.NamedExecContext(ctx, insertAllele, row); err != nil {
			return fmt.Errorf("failed to insert allele row %d: %w", i, err)
		}
	}

	insertMotif := fmt.Sprintf(`INSERT INTO %s (id, disease, sample_allele, pos, motif, anno)
		VALUES (:id, :disease, :sample_allele, :pos, :motif, :anno)`, motifTable)
	for i, m := range motifs {
		row := motifRow{ID: i, Disease: m.Disease, SampleAllele: m.SampleAllele, Pos: m.Pos, Motif: m.Motif, Anno: m.Anno}
		if _, err := tx.NamedExecContext(ctx, insertMotif, row); err != nil {
			return fmt.Errorf("failed to insert motif row %d: %w", i, err)
		}
	}

	return tx.Commit()
}
