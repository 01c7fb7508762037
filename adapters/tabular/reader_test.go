package tabular

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"strbrowser/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const countTSV = "\tdisease\tgene\ttype\tlocus_structure\tInheritance\tpathogenic_min\tpathogenic_max\tsample\tsex\tcount\tlength\tallele\n" +
	"0\tHD\tHTT\tCAG\t(CAG)n\tAD\t36\t250\tHG00096\tmale\t17\t51\t1\n" +
	"1\tHD\tHTT\tCAG\t(CAG)n\tAD\t36\tNA\tHG00096\tmale\t19.0\t57\t2\n" +
	"\n" +
	"2\tFXS\tFMR1\tCGG\t(CGG)n\tXD\t200\t\tHG00097\tfemale\t30\t90\t1\n"

const motifTSV = "disease\tsample_allele\tpos\tmotif\tanno\n" +
	"HD\tHG00096_1\t0\tCAG\tCAG\n" +
	"HD\tHG00096_1\t1\tCAA\t\n" +
	"FXS\tHG00097_1\t0\tCGG\tCGG\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceTSV(t *testing.T) {
	src := NewFileSource(writeFile(t, "count.tsv", countTSV), writeFile(t, "motif.tsv", motifTSV))

	alleles, err := src.LoadAlleles(context.Background())
	require.NoError(t, err)
	require.Len(t, alleles, 3)

	first := alleles[0]
	assert.Equal(t, "HD", first.Disease)
	assert.Equal(t, "HTT", first.Gene)
	assert.Equal(t, "AD", first.Inheritance)
	assert.Equal(t, 17, first.Count)
	assert.Equal(t, 51, first.Length)
	assert.Equal(t, 36.0, first.PathogenicMin)
	assert.Equal(t, "HG00096_1", first.SampleAllele)

	assert.Equal(t, 19, alleles[1].Count)
	assert.True(t, math.IsNaN(alleles[1].PathogenicMax))
	assert.True(t, math.IsNaN(alleles[2].PathogenicMax))

	motifs, err := src.LoadMotifs(context.Background())
	require.NoError(t, err)
	require.Len(t, motifs, 3)
	assert.Equal(t, 1, motifs[1].Pos)
	assert.False(t, motifs[1].Annotated())
	assert.Contains(t, src.Describe(), "count.tsv")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "missing column",
			content: "disease\tsample_allele\tpos\tmotif\nHD\tA_1\t0\tCAG\n",
			target:  core.ErrMissingColumn,
		},
		{
			name:    "fractional position",
			content: "disease\tsample_allele\tpos\tmotif\tanno\nHD\tA_1\t0.5\tCAG\tCAG\n",
			target:  core.ErrMalformedCell,
		},
		{
			name:    "text position",
			content: "disease\tsample_allele\tpos\tmotif\tanno\nHD\tA_1\tfirst\tCAG\tCAG\n",
			target:  core.ErrMalformedCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewFileSource("", writeFile(t, "motif.tsv", tt.content))
			_, err := src.LoadMotifs(context.Background())
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDecodeErrorsReportSourceLine(t *testing.T) {
	header := "disease\tgene\ttype\tlocus_structure\tInheritance\tpathogenic_min\tpathogenic_max\tsample\tsex\tcount\tlength\tallele\n"
	good := "HD\tHTT\tCAG\t(CAG)n\tAD\t36\tNA\tHG00096\tmale\t17\t51\t1\n"
	bad := "HD\tHTT\tCAG\t(CAG)n\tAD\t36\tNA\tHG00097\tmale\tmany\t51\t1\n"

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no blank lines", header + good + bad, "alleles row 3 column count"},
		{"empty line skipped", header + good + "\n" + bad, "alleles row 4 column count"},
		{"tab-only lines skipped", header + "\t\t\n" + good + "\n\t\n" + bad, "alleles row 6 column count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewFileSource(writeFile(t, "count.tsv", tt.content), "")
			_, err := src.LoadAlleles(context.Background())
			require.ErrorIs(t, err, core.ErrMalformedCell)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadDataRejectsHeaderOnly(t *testing.T) {
	_, err := NewDataReader(writeFile(t, "empty.tsv", "disease\tpos\n")).ReadData()
	assert.Error(t, err)

	_, err = NewDataReader(filepath.Join(t.TempDir(), "missing.tsv")).ReadData()
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	content := strings.ReplaceAll(motifTSV, "\t", ",")
	raw, err := NewDataReader(writeFile(t, "motif.csv", content)).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"disease", "sample_allele", "pos", "motif", "anno"}, raw.Headers)
	assert.Len(t, raw.Rows, 3)
	assert.Equal(t, "CGG", raw.Rows[2]["motif"])
	assert.Equal(t, []int{2, 3, 4}, raw.Lines)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"disease", "sample_allele", "pos", "motif", "anno"},
		{"HD", "HG00096_1", 0, "CAG", "CAG"},
		{"HD", "HG00096_1", 1, "CAA", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "motif.xlsx")
	require.NoError(t, f.SaveAs(path))

	motifs, err := NewFileSource("", path).LoadMotifs(context.Background())
	require.NoError(t, err)
	require.Len(t, motifs, 2)
	assert.Equal(t, "CAA", motifs[1].Motif)
	assert.Equal(t, 1, motifs[1].Pos)
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource("a.tsv", "b.tsv").LoadAlleles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
