package postgres

import (
	"context"
	"math"
	"testing"

	"strbrowser/domain/tandem"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	alleles := tandem.AlleleTable{
		{Disease: "HD", Gene: "HTT", Type: "CAG", LocusStructure: "(CAG)n", Inheritance: "AD",
			PathogenicMin: 36, PathogenicMax: math.NaN(), Sample: "HG00096", Sex: "male",
			Count: 17, Length: 51, Allele: "1", SampleAllele: "HG00096_1"},
		{Disease: "FXS", Gene: "FMR1", Type: "CGG", Inheritance: "XD", PathogenicMin: 200,
			PathogenicMax: 1000, Sample: "HG00097", Sex: "female", Count: 30, Length: 90, Allele: "2"},
	}
	motifs := tandem.MotifTable{
		{Disease: "HD", SampleAllele: "HG00096_1", Pos: 0, Motif: "CAG", Anno: "CAG"},
		{Disease: "HD", SampleAllele: "HG00096_1", Pos: 1, Motif: "CAA"},
	}

	require.NoError(t, ImportTables(ctx, db, "str_counts", "str_motifs", alleles, motifs))

	repo, err := NewTableRepository(db, "str_counts", "str_motifs")
	require.NoError(t, err)

	gotAlleles, err := repo.LoadAlleles(ctx)
	require.NoError(t, err)
	require.Len(t, gotAlleles, 2)
	assert.Equal(t, "HTT", gotAlleles[0].Gene)
	assert.Equal(t, 36.0, gotAlleles[0].PathogenicMin)
	assert.True(t, math.IsNaN(gotAlleles[0].PathogenicMax))
	assert.Equal(t, "FXS", gotAlleles[1].Disease)
	assert.Equal(t, "HG00097_2", gotAlleles[1].SampleAllele, "blank sample_allele is derived")

	gotMotifs, err := repo.LoadMotifs(ctx)
	require.NoError(t, err)
	assert.Equal(t, motifs, gotMotifs)
	assert.Contains(t, repo.Describe(), "str_counts")

	// a second import replaces, not appends
	require.NoError(t, ImportTables(ctx, db, "str_counts", "str_motifs", alleles[:1], nil))
	gotAlleles, err = repo.LoadAlleles(ctx)
	require.NoError(t, err)
	assert.Len(t, gotAlleles, 1)
}

func TestNewTableRepositoryRejectsBadNames(t *testing.T) {
	db := openTestDB(t)
	_, err := NewTableRepository(db, "str_counts; DROP TABLE x", "str_motifs")
	assert.Error(t, err)
	assert.Error(t, CreateTables(context.Background(), db, "ok", "1bad"))
}
