package views

import (
	"testing"

	"strbrowser/domain/tandem"
	"strbrowser/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridAlleles() tandem.AlleleTable {
	return tandem.AlleleTable{
		{Sample: "HG00096", Count: 17, Length: 51, Allele: "1", Sex: "male"},
		{Sample: "HG00096", Count: 19, Length: 57, Allele: "2", Sex: "male"},
		{Sample: "NA12878", Count: 22, Length: 66, Allele: "1", Sex: "female"},
		{Sample: "NA12878", Count: 17, Length: 51, Allele: "2", Sex: "female"},
	}
}

func TestGridFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"no filter", nil, []string{"HG00096/1", "HG00096/2", "NA12878/1", "NA12878/2"}},
		{"text substring", map[string]string{"sex": "FEM"}, []string{"NA12878/1", "NA12878/2"}},
		{"exact count", map[string]string{"count": "17"}, []string{"HG00096/1", "NA12878/2"}},
		{"range", map[string]string{"count": "18-22"}, []string{"HG00096/2", "NA12878/1"}},
		{"open upper", map[string]string{"length": "57-"}, []string{"HG00096/2", "NA12878/1"}},
		{"open lower", map[string]string{"length": "-51"}, []string{"HG00096/1", "NA12878/2"}},
		{"combined", map[string]string{"sample": "hg", "allele": "2"}, []string{"HG00096/2"}},
		{"blank ignored", map[string]string{"sample": "  "}, []string{"HG00096/1", "HG00096/2", "NA12878/1", "NA12878/2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(gridAlleles(), GridQuery{Filters: tt.filters})
			require.NoError(t, err)

			var got []string
			for _, r := range grid.Rows {
				got = append(got, r.Sample+"/"+r.Allele)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 4, grid.Total)
			assert.Equal(t, len(tt.want), grid.Shown)
		})
	}
}

func TestGridSort(t *testing.T) {
	grid, err := BuildGrid(gridAlleles(), GridQuery{Sort: "-count"})
	require.NoError(t, err)
	assert.Equal(t, []int{22, 19, 17, 17}, []int{grid.Rows[0].Count, grid.Rows[1].Count, grid.Rows[2].Count, grid.Rows[3].Count})
	// stable: the two 17s keep source order
	assert.Equal(t, "HG00096", grid.Rows[2].Sample)

	grid, err = BuildGrid(gridAlleles(), GridQuery{Sort: "sex"})
	require.NoError(t, err)
	assert.Equal(t, "female", grid.Rows[0].Sex)
	assert.Equal(t, []string{"NA12878", "22", "66", "1", "female"}, grid.Rows[0].Cells())
}

func TestGridRejectsBadQuery(t *testing.T) {
	queries := []GridQuery{
		{Filters: map[string]string{"gene": "HTT"}},
		{Filters: map[string]string{"count": "many"}},
		{Filters: map[string]string{"count": "-"}},
		{Sort: "gene"},
	}
	for _, q := range queries {
		_, err := BuildGrid(gridAlleles(), q)
		require.Error(t, err)
		assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown(AboutMarkdown))
	assert.Contains(t, out, `href="https://strchive.org/index"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "<em>Vamos</em>")
	assert.NotContains(t, string(RenderMarkdown("<script>x</script>")), "<script>")
}
