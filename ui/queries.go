package ui

import (
	"fmt"
	"net/url"
	"strconv"

	"strbrowser/domain/tandem"
	"strbrowser/internal/dataset"
	"strbrowser/internal/errors"
	"strbrowser/internal/session"
	"strbrowser/internal/views"
)

// queries answers the stateless JSON endpoints. Each call runs a throwaway session so
// selection validation matches the dashboard; an empty disease means the default one.
type queries struct {
	catalog *dataset.Catalog
}

type diseasesResponse struct {
	Diseases []string      `json:"diseases"`
	Default  string        `json:"default"`
	Catalog  dataset.Stats `json:"catalog"`
}

func (q queries) view(disease, binWidth string) (session.View, error) {
	var in session.Input
	if disease != "" {
		in.Disease = &disease
	}
	if binWidth != "" {
		w, err := strconv.Atoi(binWidth)
		if err != nil {
			return session.View{}, errors.ValidationError(fmt.Sprintf("bin_width must be an integer, got %q", binWidth))
		}
		in.BinWidth = &w
	}
	return session.New(q.catalog).Update(in)
}

func (q queries) diseases() diseasesResponse {
	return diseasesResponse{
		Diseases: q.catalog.Diseases(),
		Default:  q.catalog.DefaultDisease(),
		Catalog:  q.catalog.Stats(),
	}
}

func (q queries) alleles(disease string) ([]views.AlleleRow, error) {
	v, err := q.view(disease, "")
	if err != nil {
		return nil, err
	}
	return views.AlleleRows(v.Alleles), nil
}

func (q queries) motifs(disease string) (tandem.MotifTable, error) {
	v, err := q.view(disease, "")
	if err != nil {
		return nil, err
	}
	return v.Motifs, nil
}

func (q queries) summary(disease string) (views.Summary, error) {
	v, err := q.view(disease, "")
	if err != nil {
		return views.Summary{}, err
	}
	return views.Summarize(v.Selection.Disease, v.Alleles)
}

func (q queries) histogram(disease, binWidth string) (views.Histogram, error) {
	v, err := q.view(disease, binWidth)
	if err != nil {
		return views.Histogram{}, err
	}
	return views.BuildHistogram(v.Selection.Disease, v.Alleles, v.Selection.BinWidth)
}

func (q queries) heatmap(disease string) (views.Heatmap, error) {
	v, err := q.view(disease, "")
	if err != nil {
		return views.Heatmap{}, err
	}
	return views.BuildHeatmap(v.Motifs), nil
}

func (q queries) table(disease string, values url.Values) (views.Grid, error) {
	v, err := q.view(disease, "")
	if err != nil {
		return views.Grid{}, err
	}
	return views.BuildGrid(v.Alleles, gridQueryFrom(values))
}

// gridQueryFrom picks the grid filters and sort out of request values. Parameters that are
// not grid columns are ignored.
func gridQueryFrom(values url.Values) views.GridQuery {
	q := views.GridQuery{Sort: values.Get("sort")}
	for _, col := range views.GridColumns {
		if f := values.Get(col); f != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[col] = f
		}
	}
	return q
}
