package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphMetrics holds the extent of one glyph at a given size. Ascent and
// Descent are distances from the baseline, both positive for ink on their
// side of it.
type GlyphMetrics struct {
	Ascent  float64
	Descent float64
	Width   float64
}

// metricRune is measured when a caller asks for the metrics of rune 0.
const metricRune = 'M'

// MetricInfo returns the metrics of r in font index of src at size.
// Rune 0 asks for the metrics of a capital M, which the plot host uses
// to size its text boxes. A rune missing from the font measures as zero.
func MetricInfo(r rune, src *FontSource, index int, size float64) GlyphMetrics {
	if src == nil || size <= 0 {
		return GlyphMetrics{}
	}
	if r == 0 {
		r = metricRune
	}
	f := src.font(index)

	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, r)
	if err != nil || gid == 0 {
		return GlyphMetrics{}
	}
	ppem := fixed.Int26_6(size * 64)
	bounds, advance, err := f.GlyphBounds(&buf, gid, ppem, font.HintingNone)
	if err != nil {
		return GlyphMetrics{}
	}
	// sfnt bounds grow downwards: Min.Y is above the baseline.
	return GlyphMetrics{
		Ascent:  max(0, -fixedToFloat(bounds.Min.Y)),
		Descent: max(0, fixedToFloat(bounds.Max.Y)),
		Width:   fixedToFloat(advance),
	}
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}
