package ui

import (
	"fmt"
	"math"

	"strbrowser/internal/views"
)

// SVG layout in user units
const (
	chartWidth   = 640.0
	chartHeight  = 320.0
	chartLeft    = 56.0
	chartRight   = 16.0
	chartTop     = 16.0
	chartBottom  = 48.0
	heatmapCellH = 8.0
	maxRowLabels = 40
	yTickCount   = 5
)

type svgTick struct {
	Pos   float64
	Label string
}

type svgBar struct {
	X, Y, W, H float64
	Title      string
}

// histogramChart is a views.Histogram laid out for the SVG template
type histogramChart struct {
	Width, Height  float64
	Left, Bottom   float64
	PlotW, PlotH   float64
	Bars           []svgBar
	XTicks, YTicks []svgTick
	XTitle, YTitle string
}

func newHistogramChart(h views.Histogram) histogramChart {
	c := histogramChart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartLeft,
		Bottom: chartHeight - chartBottom,
		PlotW:  chartWidth - chartLeft - chartRight,
		PlotH:  chartHeight - chartTop - chartBottom,
		XTitle: h.XTitle,
		YTitle: h.YTitle,
	}
	if len(h.Bins) == 0 {
		return c
	}

	xRange := h.Max - h.Min
	x := func(v float64) float64 { return c.Left + (v-h.Min)/xRange*c.PlotW }
	peak := float64(h.Peak)
	if peak == 0 {
		peak = 1
	}

	for _, b := range h.Bins {
		height := float64(b.Count) / peak * c.PlotH
		c.Bars = append(c.Bars, svgBar{
			X:     x(b.Lower),
			Y:     c.Bottom - height,
			W:     math.Max(x(b.Upper)-x(b.Lower)-1, 1),
			H:     height,
			Title: fmt.Sprintf("%s to %s: %d alleles", num(b.Lower), num(b.Upper), b.Count),
		})
	}

	c.XTicks = append(c.XTicks, svgTick{Pos: x(h.Min), Label: num(h.Min)})
	step := int(math.Ceil(float64(len(h.Bins)) / 8))
	for i := step; i < len(h.Bins); i += step {
		c.XTicks = append(c.XTicks, svgTick{Pos: x(h.Bins[i].Lower), Label: num(h.Bins[i].Lower)})
	}
	c.XTicks = append(c.XTicks, svgTick{Pos: x(h.Max), Label: num(h.Max)})

	for i := 0; i <= yTickCount; i++ {
		v := peak * float64(i) / yTickCount
		c.YTicks = append(c.YTicks, svgTick{Pos: c.Bottom - v/peak*c.PlotH, Label: num(math.Round(v*10) / 10)})
	}
	return c
}

type svgCell struct {
	X, Y, W, H float64
	Color      string
	Title      string
}

// heatmapChart is a views.Heatmap laid out for the SVG template
type heatmapChart struct {
	Width, Height  float64
	Left, Top      float64
	Cells          []svgCell
	RowLabels      []svgTick
	XTicks         []svgTick
	Legend         []views.LegendEntry
	XLabel, YLabel string
	Empty          bool
}

func newHeatmapChart(h views.Heatmap) heatmapChart {
	c := heatmapChart{
		Width:  chartWidth,
		Left:   chartLeft + 64,
		Top:    chartTop,
		Legend: h.Legend,
		XLabel: h.XLabel,
		YLabel: h.YLabel,
		Empty:  len(h.Rows) == 0,
	}
	plotH := float64(len(h.Rows)) * heatmapCellH
	c.Height = c.Top + plotH + chartBottom
	if c.Empty {
		return c
	}

	cellW := (c.Width - c.Left - chartRight) / float64(len(h.Positions))
	for i, row := range h.Rows {
		y := c.Top + float64(i)*heatmapCellH
		for j, code := range row.Codes {
			if code == views.NoMotif {
				continue
			}
			c.Cells = append(c.Cells, svgCell{
				X:     c.Left + float64(j)*cellW,
				Y:     y,
				W:     cellW,
				H:     heatmapCellH,
				Color: row.Colors[j],
				Title: fmt.Sprintf("%s pos %d: %s", row.SampleAllele, h.Positions[j], h.Legend[code].Motif),
			})
		}
		if len(h.Rows) <= maxRowLabels {
			c.RowLabels = append(c.RowLabels, svgTick{Pos: y + heatmapCellH/2, Label: row.SampleAllele})
		}
	}

	step := int(math.Ceil(float64(len(h.Positions)) / 10))
	for j := 0; j < len(h.Positions); j += step {
		c.XTicks = append(c.XTicks, svgTick{
			Pos:   c.Left + (float64(j)+0.5)*cellW,
			Label: fmt.Sprintf("%d", h.Positions[j]),
		})
	}
	return c
}

func num(v float64) string {
	return views.Measure{Value: v, Valid: true}.String()
}
