package tandem

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func sampleAlleles() AlleleTable {
	return AlleleTable{
		{Disease: "HD", Sample: "HG001", Allele: "1", SampleAllele: "HG001_1", Count: 10},
		{Disease: "SCA1", Sample: "HG001", Allele: "1", SampleAllele: "HG001_1", Count: 30},
		{Disease: "HD", Sample: "HG002", Allele: "2", SampleAllele: "HG002_2", Count: 12},
		{Disease: "FXS", Sample: "HG003", Allele: "1", SampleAllele: "HG003_1", Count: 40},
	}
}

func TestDiseasesFirstAppearanceOrder(t *testing.T) {
	got := sampleAlleles().Diseases()
	if diff := cmp.Diff([]string{"HD", "SCA1", "FXS"}, got); diff != "" {
		t.Errorf("Diseases() mismatch (-want +got):\n%s", diff)
	}
}

func TestWhereDisease(t *testing.T) {
	table := sampleAlleles()

	hd := table.WhereDisease("HD")
	assert.Len(t, hd, 2)
	for _, r := range hd {
		assert.Equal(t, "HD", r.Disease)
	}
	assert.Equal(t, []float64{10, 12}, hd.Counts())

	none := table.WhereDisease("DM1")
	assert.NotNil(t, none)
	assert.Empty(t, none)

	hd[0].Count = 99
	assert.Equal(t, 10, table[0].Count, "filtered rows must not alias the source table")
}

func TestMotifOrphans(t *testing.T) {
	motifs := MotifTable{
		{Disease: "HD", SampleAllele: "HG001_1", Pos: 0},
		{Disease: "HD", SampleAllele: "HG003_1", Pos: 0},
		{Disease: "FXS", SampleAllele: "HG003_1", Pos: 0},
	}
	assert.Equal(t, 1, motifs.Orphans(sampleAlleles()))
	assert.Len(t, motifs.WhereDisease("HD"), 2)
}

func TestMissingCells(t *testing.T) {
	for _, cell := range []string{
		"", " ", "NA", "NaN", "nan", "-nan", "-NaN", "N/A", "n/a", "#N/A", "#N/A N/A", "#NA",
		"NULL", "null", "None", "<NA>", "1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN",
	} {
		assert.True(t, IsMissing(cell), cell)
	}
	for _, cell := range []string{"CAG", "none", "Null", "0", "NAN"} {
		assert.False(t, IsMissing(cell), cell)
	}

	assert.True(t, MotifRecord{Anno: "CAG"}.Annotated())
	assert.False(t, MotifRecord{Anno: "NA"}.Annotated())
	assert.False(t, MotifRecord{Anno: "<NA>"}.Annotated())
	assert.False(t, MotifRecord{Anno: "None"}.Annotated())

	assert.False(t, AlleleRecord{PathogenicMin: 36, PathogenicMax: math.NaN()}.HasPathogenicRange())
	assert.Equal(t, "HG001_2", DeriveSampleAllele("HG001", "2"))
}
