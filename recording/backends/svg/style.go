package svg

import (
	"strings"

	"github.com/gogpu/gglive/recording"
)

// ptPerLWD converts line widths (1/96 inch) to points.
const ptPerLWD = 72.0 / 96.0

// writeStyle writes the style attribute for a stroked (and optionally
// filled) shape. Properties equal to the stylesheet defaults are omitted.
func writeStyle(w *strings.Builder, gc recording.GC, filled bool, extra string) {
	w.WriteString(" style='")

	lwd := gc.LWD * ptPerLWD
	w.WriteString("stroke-width: ")
	w.WriteString(num(lwd))
	w.WriteString(";")

	switch {
	case gc.Col.IsTransparent() || gc.LTY == recording.LineTypeBlank:
		w.WriteString(" stroke: none;")
	default:
		if gc.Col.Hex() != "#000000" {
			w.WriteString(" stroke: ")
			w.WriteString(gc.Col.Hex())
			w.WriteString(";")
		}
		if !gc.Col.IsOpaque() {
			w.WriteString(" stroke-opacity: ")
			w.WriteString(num(gc.Col.Opacity()))
			w.WriteString(";")
		}
		writeDashes(w, gc.LTY, lwd)
		if gc.LEnd != 0 && gc.LEnd != recording.LineEndRound {
			w.WriteString(" stroke-linecap: ")
			w.WriteString(gc.LEnd.String())
			w.WriteString(";")
		}
		if gc.LJoin != 0 && gc.LJoin != recording.LineJoinRound {
			w.WriteString(" stroke-linejoin: ")
			w.WriteString(gc.LJoin.String())
			w.WriteString(";")
			if gc.LJoin == recording.LineJoinMitre && gc.LMitre > 0 && gc.LMitre != 10 {
				w.WriteString(" stroke-miterlimit: ")
				w.WriteString(num(gc.LMitre))
				w.WriteString(";")
			}
		}
	}

	if filled && !gc.Fill.IsTransparent() {
		w.WriteString(" fill: ")
		w.WriteString(gc.Fill.Hex())
		w.WriteString(";")
		if !gc.Fill.IsOpaque() {
			w.WriteString(" fill-opacity: ")
			w.WriteString(num(gc.Fill.Opacity()))
			w.WriteString(";")
		}
	}

	if extra != "" {
		w.WriteString(" ")
		w.WriteString(extra)
	}
	w.WriteString("'")
}

// writeDashes writes the dash array of a line type. Dash lengths are
// multiples of the line width, with a floor of one point so thin lines keep
// a visible pattern.
func writeDashes(w *strings.Builder, lty recording.LineType, lwd float64) {
	dashes := lty.Dashes()
	if len(dashes) == 0 {
		return
	}
	unit := max(lwd, 1)
	w.WriteString(" stroke-dasharray: ")
	for i, d := range dashes {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(num(float64(d) * unit))
	}
	w.WriteString(";")
}
