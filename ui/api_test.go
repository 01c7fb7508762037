package ui

import (
	"net/http"
	"testing"

	"strbrowser/domain/core"
	"strbrowser/internal"
	"strbrowser/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// apiHandlers returns the gin and chi renditions of the JSON API
func apiHandlers(t *testing.T) map[string]http.Handler {
	return map[string]http.Handler{
		"gin": newTestServer(t).Handler(),
		"chi": NewApp(testCatalog(), Config{Port: "0"}, internal.NewLogger(internal.LogLevelError)),
	}
}

func TestAPI(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		checks map[string]interface{}
	}{
		{
			name:   "diseases",
			target: "/api/diseases",
			status: http.StatusOK,
			checks: map[string]interface{}{"diseases.#": int64(2), "diseases.0": "HD", "default": "HD"},
		},
		{
			name:   "alleles default disease",
			target: "/api/alleles",
			status: http.StatusOK,
			checks: map[string]interface{}{"#": int64(5), "0.gene": "HTT", "0.pathogenic_max": nil},
		},
		{
			name:   "motifs",
			target: "/api/motifs?disease=SCA1",
			status: http.StatusOK,
			checks: map[string]interface{}{"#": int64(1), "0.motif": "CAT"},
		},
		{
			name:   "summary",
			target: "/api/summary?disease=SCA1",
			status: http.StatusOK,
			checks: map[string]interface{}{"value_boxes.gene": "ATXN1", "value_boxes.pathogenic_max": 91.0, "counts.alleles": int64(1)},
		},
		{
			name:   "histogram width two",
			target: "/api/histogram?disease=HD&bin_width=2",
			status: http.StatusOK,
			checks: map[string]interface{}{"bins.#": int64(3), "bins.0.count": int64(1), "bins.2.count": int64(3), "x_title": "Motif count"},
		},
		{
			name:   "histogram degenerate",
			target: "/api/histogram?disease=SCA1",
			status: http.StatusUnprocessableEntity,
			checks: map[string]interface{}{"code": "DEGENERATE_BINS"},
		},
		{
			name:   "histogram bad width",
			target: "/api/histogram?bin_width=80",
			status: http.StatusBadRequest,
			checks: map[string]interface{}{"code": "VALIDATION_ERROR"},
		},
		{
			name:   "unknown disease",
			target: "/api/summary?disease=FOO",
			status: http.StatusNotFound,
			checks: map[string]interface{}{"code": "NOT_FOUND"},
		},
		{
			name:   "heatmap",
			target: "/api/heatmap?disease=HD",
			status: http.StatusOK,
			checks: map[string]interface{}{"rows.0.sample_allele": "HG02_1", "positions.#": int64(2), "legend.0.motif": "CAA", "rows.1.codes.1": int64(-1)},
		},
		{
			name:   "table filtered and sorted",
			target: "/api/table?disease=HD&sample=hg01&sort=-length",
			status: http.StatusOK,
			checks: map[string]interface{}{"shown": int64(2), "total": int64(5), "rows.0.length": int64(36)},
		},
		{
			name:   "table bad sort",
			target: "/api/table?sort=gene",
			status: http.StatusBadRequest,
			checks: map[string]interface{}{"code": "VALIDATION_ERROR"},
		},
	}

	for name, h := range apiHandlers(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				w := do(t, h, http.MethodGet, tt.target, nil)
				require.Equal(t, tt.status, w.Code, w.Body.String())

				body := w.Body.String()
				for path, want := range tt.checks {
					got := gjson.Get(body, path)
					switch want := want.(type) {
					case nil:
						assert.Equal(t, gjson.Null, got.Type, path)
					case string:
						assert.Equal(t, want, got.String(), path)
					case int64:
						assert.Equal(t, want, got.Int(), path)
					case float64:
						assert.Equal(t, want, got.Float(), path)
					}
				}
			})
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty selection", core.NewEmptySelectionError("HD"), http.StatusNotFound},
		{"degenerate bins", core.ErrDegenerateBins, http.StatusUnprocessableEntity},
		{"bin width", core.NewBinWidthError(0, 1, 50), http.StatusBadRequest},
		{"unknown disease", core.NewUnknownDiseaseError("X"), http.StatusNotFound},
		{"app error", errors.ValidationError("bad"), http.StatusBadRequest},
		{"load failure", errors.LoadFailed("alleles", core.ErrEmptyTable), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}

	pe := newPanelError(core.NewEmptySelectionError("HD"))
	assert.Equal(t, "EMPTY_SELECTION", pe.Code)
	assert.Nil(t, newPanelError(nil))
}
