package svg

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/gogpu/gglive/recording"
)

func linePage() *recording.Page {
	p := recording.NewPage(200, 100, recording.White)
	_ = p.Append(recording.NewLine(recording.DefaultGC(), 0, 0, 100, 50))
	p.Finalize(0, 0)
	return p
}

func TestRenderCaptureSize(t *testing.T) {
	out := Render(linePage(), -1, -1)

	if !strings.Contains(out, "<line x1='0.00' y1='0.00' x2='100.00' y2='50.00'") {
		t.Errorf("line not at capture coordinates:\n%s", out)
	}
	if !strings.Contains(out, "viewBox='0 0 200.00 100.00'") {
		t.Errorf("viewBox does not match capture size:\n%s", out)
	}
}

func TestRenderExplicitSameSize(t *testing.T) {
	if a, b := Render(linePage(), -1, -1), Render(linePage(), 200, 100); a != b {
		t.Errorf("rendering at capture size differs from -1/-1:\n%s\n---\n%s", a, b)
	}
}

func TestRenderRescaled(t *testing.T) {
	out := Render(linePage(), 400, 200)

	if !strings.Contains(out, "<line x1='0.00' y1='0.00' x2='200.00' y2='100.00'") {
		t.Errorf("line not rescaled:\n%s", out)
	}
	if !strings.Contains(out, "width='400.00pt' height='200.00pt'") {
		t.Errorf("document size not rescaled:\n%s", out)
	}
	// Stroke width scales with geometry: 1 lwd = 0.75pt, doubled.
	if !strings.Contains(out, "stroke-width: 1.50;") {
		t.Errorf("stroke width not rescaled:\n%s", out)
	}
}

func TestRenderBackground(t *testing.T) {
	tests := []struct {
		bg   recording.Color
		want string
	}{
		{recording.White, "fill: #FFFFFF;"},
		{recording.Transparent, "fill: none;"},
		{recording.Color{R: 255, A: 128}, "fill: #FF0000; fill-opacity: 0.50;"},
	}
	for _, tt := range tests {
		p := recording.NewPage(10, 10, tt.bg)
		out := Render(p, -1, -1)
		if !strings.Contains(out, "<rect width='100%' height='100%' style='stroke: none; "+tt.want+"'/>") {
			t.Errorf("background %v: missing %q in\n%s", tt.bg, tt.want, out)
		}
	}
}

func TestRenderClipGroups(t *testing.T) {
	p := recording.NewPage(100, 100, recording.White)
	gc := recording.DefaultGC()
	_ = p.SetClip(recording.Rect{X0: 0, Y0: 0, X1: 50, Y1: 50})
	_ = p.Append(recording.NewLine(gc, 0, 0, 10, 10))
	_ = p.SetClip(recording.Rect{X0: 50, Y0: 50, X1: 100, Y1: 100})
	_ = p.Append(recording.NewLine(gc, 60, 60, 70, 70))

	out := Render(p, -1, -1, WithIDPrefix("p1-"))

	for _, want := range []string{
		"<clipPath id='p1-c0'>",
		"<clipPath id='p1-c1'>",
		"<g clip-path='url(#p1-c0)'>",
		"<g clip-path='url(#p1-c1)'>",
		"<rect x='50.00' y='50.00' width='50.00' height='50.00' />",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if open, closed := strings.Count(out, "<g "), strings.Count(out, "</g>"); open != closed {
		t.Errorf("unbalanced groups: %d open, %d closed", open, closed)
	}
}

func TestRenderStyles(t *testing.T) {
	gc := recording.DefaultGC()
	gc.Col = recording.Color{R: 255, A: 128}
	gc.Fill = recording.Color{B: 255, A: 255}
	gc.LTY = recording.LineTypeDashed
	gc.LWD = 2
	gc.LEnd = recording.LineEndButt
	gc.LJoin = recording.LineJoinMitre
	gc.LMitre = 4

	p := recording.NewPage(100, 100, recording.White)
	_ = p.Append(recording.NewRect(gc, 50, 40, 10, 10))
	out := Render(p, -1, -1)

	for _, want := range []string{
		"<rect x='10.00' y='10.00' width='40.00' height='30.00'",
		"stroke-width: 1.50;",
		"stroke: #FF0000;",
		"stroke-opacity: 0.50;",
		"stroke-dasharray: 6.00,6.00;",
		"stroke-linecap: butt;",
		"stroke-linejoin: miter;",
		"stroke-miterlimit: 4.00;",
		"fill: #0000FF;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestRenderBlankLineHasNoStroke(t *testing.T) {
	gc := recording.DefaultGC()
	gc.LTY = recording.LineTypeBlank
	p := recording.NewPage(10, 10, recording.White)
	_ = p.Append(recording.NewLine(gc, 0, 0, 1, 1))

	if out := Render(p, -1, -1); !strings.Contains(out, "stroke: none;") {
		t.Errorf("blank line type should disable the stroke:\n%s", out)
	}
}

func TestRenderShapes(t *testing.T) {
	gc := recording.DefaultGC()
	p := recording.NewPage(100, 100, recording.White)
	_ = p.Append(recording.NewPolyline(gc, []float64{1, 2, 3}, []float64{4, 5, 6}))
	_ = p.Append(recording.NewPolygon(gc, []float64{0, 10, 10}, []float64{0, 0, 10}))
	_ = p.Append(recording.NewPath(gc, []float64{0, 10, 10, 2, 4, 4}, []float64{0, 0, 10, 2, 2, 4}, []int{3, 3}, false))
	_ = p.Append(recording.NewCircle(gc, 50, 50, 5))

	out := Render(p, -1, -1)
	for _, want := range []string{
		"<polyline points='1.00,4.00 2.00,5.00 3.00,6.00'",
		"<polygon points='0.00,0.00 10.00,0.00 10.00,10.00'",
		"d='M 0.00 0.00 L 10.00 0.00 L 10.00 10.00 Z M 2.00 2.00 L 4.00 2.00 L 4.00 4.00 Z '",
		"fill-rule: evenodd;",
		"<circle cx='50.00' cy='50.00' r='5.00'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestRenderText(t *testing.T) {
	gc := recording.DefaultGC()
	gc.Col = recording.Color{R: 255, A: 255}
	font := recording.Font{Family: "sans", Name: "Helvetica", Face: recording.FaceBold, Size: 12, Width: 40}
	p := recording.NewPage(200, 100, recording.White)
	_ = p.Append(recording.NewText(gc, 20, 30, "a<b & c", 90, 0.5, font))

	out := Render(p, -1, -1)
	for _, want := range []string{
		"<text x='20.00' y='30.00' text-anchor='middle' transform='rotate(-90.00,20.00,30.00)'",
		"font-size: 12.00px;",
		"fill: #FF0000;",
		"font-family: \"Helvetica\";",
		"font-weight: bold;",
		">a&lt;b &amp; c</text>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "textLength") {
		t.Error("textLength written without fixed text")
	}
}

func TestRenderFixedText(t *testing.T) {
	font := recording.Font{Name: "Helvetica", Face: recording.FacePlain, Size: 12, Width: 40}
	p := recording.NewPage(200, 100, recording.White)
	_ = p.Append(recording.NewText(recording.DefaultGC(), 20, 30, "hello", 0, 0, font))

	out := Render(p, -1, -1, WithFixedText(true))
	if !strings.Contains(out, "textLength='40.00px' lengthAdjust='spacingAndGlyphs'") {
		t.Errorf("fixed text at capture size:\n%s", out)
	}

	out = Render(p, 400, 200, WithFixedText(true))
	if !strings.Contains(out, "textLength='80.00px'") {
		t.Errorf("fixed text width not rescaled:\n%s", out)
	}
	if !strings.Contains(out, "font-size: 24.00px;") {
		t.Errorf("font size not rescaled:\n%s", out)
	}
}

func TestRenderRaster(t *testing.T) {
	px := make([]uint32, 4*4)
	for i := range px {
		px[i] = recording.Color{G: 200, A: 255}.Packed()
	}
	p := recording.NewPage(100, 100, recording.White)
	_ = p.Append(recording.NewRaster(recording.DefaultGC(), px, 4, 4, 10, 60, 40, -40, 0, false))

	out := Render(p, -1, -1, WithMaxRasterPixels(4))

	if !strings.Contains(out, "<image width='40.00' height='40.00' x='10.00' y='20.00'") {
		t.Errorf("raster placement:\n%s", out)
	}
	if !strings.Contains(out, "image-rendering: pixelated;") {
		t.Errorf("non-interpolated raster should be pixelated:\n%s", out)
	}

	m := regexp.MustCompile(`base64,([^']+)'`).FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no inlined image data:\n%s", out)
	}
	data, err := base64.StdEncoding.DecodeString(m[1])
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("downsampled size = %dx%d, want 2x2", b.Dx(), b.Dy())
	}
}

func TestBackendPlayback(t *testing.T) {
	b := NewBackend()
	if err := linePage().Playback(b, -1, -1); err != nil {
		t.Fatalf("Playback() = %v", err)
	}
	if got, want := b.String(), Render(linePage(), -1, -1); got != want {
		t.Errorf("Playback markup differs from Render():\n%s\n%s", got, want)
	}
	if !strings.HasSuffix(b.String(), "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{-0.001, "0.00"},
		{1.005, "1.00"},
		{12.346, "12.35"},
		{-3.5, "-3.50"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
