package views

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// viridis anchors sampled from matplotlib's colormap at ninths
var viridisAnchors = []string{
	"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c",
	"#28ae80", "#5ec962", "#addc30", "#fde725",
}

var viridis = mustParseAnchors(viridisAnchors)

func mustParseAnchors(hex []string) []colorful.Color {
	out := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// Viridis maps t in [0, 1] onto the viridis ramp and returns a #rrggbb colour.
func Viridis(t float64) string {
	if t <= 0 {
		return viridis[0].Hex()
	}
	if t >= 1 {
		return viridis[len(viridis)-1].Hex()
	}
	pos := t * float64(len(viridis)-1)
	i := int(pos)
	return viridis[i].BlendRgb(viridis[i+1], pos-float64(i)).Clamped().Hex()
}

// normalize maps v from [lo, hi] onto [0, 1]; a collapsed range maps to 0.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
