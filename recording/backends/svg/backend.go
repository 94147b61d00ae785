// Package svg provides the vector renderer of gglive: a recording backend
// that turns a page into SVG markup.
//
// # Example
//
//	// Render a page snapshot
//	markup := svg.Render(page, -1, -1, svg.WithFixedText(true))
//
//	// Or drive a Backend through Page.Playback
//	b := svg.NewBackend()
//	_ = page.Playback(b, 800, 600)
//	markup = b.String()
//
// Rendering is a pure function of the page snapshot, the requested size and
// the options, so it may run on any goroutine without holding the store
// lock.
package svg

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gglive/recording"
)

// Backend writes SVG markup for a page playback.
// A Backend is not safe for concurrent use.
type Backend struct {
	opts options
	buf  strings.Builder

	inGroup bool
	defined map[recording.ClipRef]bool
}

var _ recording.Backend = (*Backend)(nil)

// NewBackend creates a new SVG backend.
func NewBackend(opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{opts: o}
}

// Render plays p back at the requested size and returns the markup.
// A width or height of -1 keeps the capture size on that axis.
func Render(p *recording.Page, width, height float64, opts ...Option) string {
	b := NewBackend(opts...)
	// Begin and End never fail for this backend.
	_ = p.Playback(b, width, height)
	return b.String()
}

// Begin starts a new document, discarding any previous output.
func (b *Backend) Begin(width, height float64, bg recording.Color) error {
	b.buf.Reset()
	b.inGroup = false
	b.defined = make(map[recording.ClipRef]bool)

	w := &b.buf
	w.WriteString("<?xml version='1.0' encoding='UTF-8' ?>\n")
	fmt.Fprintf(w, "<svg xmlns='http://www.w3.org/2000/svg' xmlns:xlink='http://www.w3.org/1999/xlink' class='%s' width='%spt' height='%spt' viewBox='0 0 %s %s'>\n",
		rootClass, num(width), num(height), num(width), num(height))
	w.WriteString("<defs>\n")
	w.WriteString("  <style type='text/css'><![CDATA[\n")
	w.WriteString("    line, polyline, polygon, path, rect, circle {\n")
	w.WriteString("      fill: none;\n")
	w.WriteString("      stroke: #000000;\n")
	w.WriteString("      stroke-linecap: round;\n")
	w.WriteString("      stroke-linejoin: round;\n")
	w.WriteString("      stroke-miterlimit: 10.00;\n")
	w.WriteString("    }\n")
	w.WriteString("  ]]></style>\n")
	w.WriteString("</defs>\n")

	w.WriteString("<rect width='100%' height='100%' style='stroke: none; ")
	if bg.IsTransparent() {
		w.WriteString("fill: none;")
	} else {
		fmt.Fprintf(w, "fill: %s;", bg.Hex())
		if !bg.IsOpaque() {
			fmt.Fprintf(w, " fill-opacity: %s;", num(bg.Opacity()))
		}
	}
	w.WriteString("'/>\n")
	return nil
}

// End closes any open clip group and the document.
func (b *Backend) End() error {
	b.closeGroup()
	b.buf.WriteString("</svg>\n")
	return nil
}

// String returns the markup of the last playback.
func (b *Backend) String() string {
	return b.buf.String()
}

// SetClip opens a group clipped to r, defining the clip path on first use.
func (b *Backend) SetClip(ref recording.ClipRef, r recording.Rect) {
	b.closeGroup()
	id := b.clipID(ref)
	if !b.defined[ref] {
		r = r.Normalize()
		fmt.Fprintf(&b.buf, "<defs>\n  <clipPath id='%s'>\n    <rect x='%s' y='%s' width='%s' height='%s' />\n  </clipPath>\n</defs>\n",
			id, num(r.X0), num(r.Y0), num(r.X1-r.X0), num(r.Y1-r.Y0))
		b.defined[ref] = true
	}
	fmt.Fprintf(&b.buf, "<g clip-path='url(#%s)'>\n", id)
	b.inGroup = true
}

// ClearClip closes the open clip group, if any.
func (b *Backend) ClearClip() {
	b.closeGroup()
}

func (b *Backend) closeGroup() {
	if b.inGroup {
		b.buf.WriteString("</g>\n")
		b.inGroup = false
	}
}

func (b *Backend) clipID(ref recording.ClipRef) string {
	return b.opts.idPrefix + "c" + strconv.Itoa(int(ref))
}

// Line writes a line element.
func (b *Backend) Line(c recording.Line) {
	w := &b.buf
	fmt.Fprintf(w, "<line x1='%s' y1='%s' x2='%s' y2='%s'", num(c.X1), num(c.Y1), num(c.X2), num(c.Y2))
	writeStyle(w, c.GC, false, "")
	w.WriteString("/>\n")
}

// Polyline writes a polyline element.
func (b *Backend) Polyline(c recording.Polyline) {
	w := &b.buf
	w.WriteString("<polyline points='")
	writePoints(w, c.X, c.Y)
	w.WriteString("'")
	writeStyle(w, c.GC, false, "")
	w.WriteString("/>\n")
}

// Polygon writes a polygon element.
func (b *Backend) Polygon(c recording.Polygon) {
	w := &b.buf
	w.WriteString("<polygon points='")
	writePoints(w, c.X, c.Y)
	w.WriteString("'")
	writeStyle(w, c.GC, true, "")
	w.WriteString("/>\n")
}

// Path writes a path element with one closed subpath per polygon.
func (b *Backend) Path(c recording.Path) {
	w := &b.buf
	w.WriteString("<path d='")
	i := 0
	for _, n := range c.NPer {
		for k := 0; k < n && i < len(c.X) && i < len(c.Y); k++ {
			if k == 0 {
				w.WriteString("M ")
			} else {
				w.WriteString("L ")
			}
			w.WriteString(num(c.X[i]))
			w.WriteByte(' ')
			w.WriteString(num(c.Y[i]))
			w.WriteByte(' ')
			i++
		}
		w.WriteString("Z ")
	}
	w.WriteString("'")
	rule := "fill-rule: evenodd;"
	if c.Winding {
		rule = "fill-rule: nonzero;"
	}
	writeStyle(w, c.GC, true, rule)
	w.WriteString("/>\n")
}

// Rect writes a rect element.
func (b *Backend) Rect(c recording.Rectangle) {
	r := c.Rect.Normalize()
	w := &b.buf
	fmt.Fprintf(w, "<rect x='%s' y='%s' width='%s' height='%s'", num(r.X0), num(r.Y0), num(r.X1-r.X0), num(r.Y1-r.Y0))
	writeStyle(w, c.GC, true, "")
	w.WriteString("/>\n")
}

// Circle writes a circle element.
func (b *Backend) Circle(c recording.Circle) {
	w := &b.buf
	fmt.Fprintf(w, "<circle cx='%s' cy='%s' r='%s'", num(c.X), num(c.Y), num(c.R))
	writeStyle(w, c.GC, true, "")
	w.WriteString("/>\n")
}

// Text writes a text element anchored at the command position.
// With fixed text enabled the rendered width is pinned to the advance
// width measured at capture time.
func (b *Backend) Text(c recording.Text) {
	if c.GC.Col.IsTransparent() {
		return
	}
	w := &b.buf
	fmt.Fprintf(w, "<text x='%s' y='%s'", num(c.X), num(c.Y))
	switch {
	case math.Abs(c.HAdj-0.5) < 0.01:
		w.WriteString(" text-anchor='middle'")
	case math.Abs(c.HAdj-1) < 0.01:
		w.WriteString(" text-anchor='end'")
	}
	if c.Rot != 0 {
		fmt.Fprintf(w, " transform='rotate(%s,%s,%s)'", num(-c.Rot), num(c.X), num(c.Y))
	}

	w.WriteString(" style='")
	fmt.Fprintf(w, "font-size: %spx;", num(c.Font.Size))
	if c.GC.Col != recording.Black {
		fmt.Fprintf(w, " fill: %s;", c.GC.Col.Hex())
	}
	if !c.GC.Col.IsOpaque() {
		fmt.Fprintf(w, " fill-opacity: %s;", num(c.GC.Col.Opacity()))
	}
	if c.Font.Name != "" {
		fmt.Fprintf(w, " font-family: %s;", quoteFamily(c.Font.Name))
	}
	if c.Font.Face.IsBold() {
		w.WriteString(" font-weight: bold;")
	}
	if c.Font.Face.IsItalic() {
		w.WriteString(" font-style: italic;")
	}
	w.WriteString("'")

	if b.opts.fixedText && c.Font.Width > 0 {
		fmt.Fprintf(w, " textLength='%spx' lengthAdjust='spacingAndGlyphs'", num(c.Font.Width))
	}
	w.WriteString(">")
	w.WriteString(html.EscapeString(c.Str))
	w.WriteString("</text>\n")
}

// Raster writes an image element with the bitmap inlined as base64 PNG.
func (b *Backend) Raster(c recording.Raster) {
	if c.Image == nil || c.Image.Bounds().Empty() {
		return
	}
	data, err := encodeRaster(c.Image, c.Interpolate, b.opts.maxRasterPixels)
	if err != nil {
		return
	}

	width, height := math.Abs(c.Width), math.Abs(c.Height)
	w := &b.buf
	fmt.Fprintf(w, "<image width='%s' height='%s' x='%s' y='%s' preserveAspectRatio='none'",
		num(width), num(height), num(c.X), num(c.Y-height))
	if c.Rot != 0 {
		fmt.Fprintf(w, " transform='rotate(%s,%s,%s)'", num(-c.Rot), num(c.X), num(c.Y))
	}
	if !c.Interpolate {
		w.WriteString(" style='image-rendering: pixelated;'")
	}
	fmt.Fprintf(w, " xlink:href='data:image/png;base64,%s'/>\n", data)
}

// num formats a coordinate with two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func writePoints(w *strings.Builder, x, y []float64) {
	n := min(len(x), len(y))
	for i := range n {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(num(x[i]))
		w.WriteByte(',')
		w.WriteString(num(y[i]))
	}
}

func quoteFamily(name string) string {
	return "\"" + html.EscapeString(name) + "\""
}
