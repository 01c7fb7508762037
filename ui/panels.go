package ui

import (
	"html/template"

	"strbrowser/internal/session"
	"strbrowser/internal/views"
)

// panelsData feeds the "panels" fragment: every display for one selection. A panel that
// cannot be drawn carries a panelError instead of its content.
type panelsData struct {
	Selection session.Selection
	Notice    *panelError

	Summary    *views.Summary
	SummaryErr *panelError

	Histogram    *histogramChart
	HistogramErr *panelError

	Heatmap heatmapChart

	Grid      *views.Grid
	GridErr   *panelError
	GridQuery views.GridQuery
}

// pageData feeds index.html
type pageData struct {
	Title       string
	About       template.HTML
	Diseases    []string
	Selection   session.Selection
	MinBinWidth int
	MaxBinWidth int
	Panels      panelsData
}

func buildPanels(view session.View, q views.GridQuery) panelsData {
	p := panelsData{Selection: view.Selection, GridQuery: q}

	if summary, err := views.Summarize(view.Selection.Disease, view.Alleles); err != nil {
		p.SummaryErr = newPanelError(err)
	} else {
		p.Summary = &summary
	}

	if hist, err := views.BuildHistogram(view.Selection.Disease, view.Alleles, view.Selection.BinWidth); err != nil {
		p.HistogramErr = newPanelError(err)
	} else {
		chart := newHistogramChart(hist)
		p.Histogram = &chart
	}

	p.Heatmap = newHeatmapChart(views.BuildHeatmap(view.Motifs))

	if grid, err := views.BuildGrid(view.Alleles, q); err != nil {
		p.GridErr = newPanelError(err)
	} else {
		p.Grid = &grid
	}
	return p
}

func (s *Server) buildPage(view session.View, q views.GridQuery) pageData {
	return pageData{
		Title:       views.Title,
		About:       views.RenderMarkdown(views.AboutMarkdown),
		Diseases:    s.catalog.Diseases(),
		Selection:   view.Selection,
		MinBinWidth: session.MinBinWidth,
		MaxBinWidth: session.MaxBinWidth,
		Panels:      buildPanels(view, q),
	}
}
