package main

import (
	"fmt"
	"math"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/recording"
)

// demoPages is the number of pages drawDemo creates.
const demoPages = 3

// drawDemo draws the demo pages through the host callbacks: shapes and
// paths, rotated squares, and a small chart with text, a clip and a raster.
func drawDemo(h gglive.Callbacks) error {
	for _, page := range []func(gglive.Callbacks) error{
		drawShapesPage,
		drawRotationPage,
		drawChartPage,
	} {
		if err := page(h); err != nil {
			return err
		}
	}
	return nil
}

func drawShapesPage(h gglive.Callbacks) error {
	w, ht := h.Size()
	gc := recording.DefaultGC()
	gc.Fill = rgb(0.1, 0.2, 0.4)
	if err := h.NewPage(gc); err != nil {
		return err
	}

	// Vertical gradient background in bands.
	const steps = 32
	gc.Col = recording.Transparent
	for i := 0; i < steps; i++ {
		t := float64(i) / steps
		gc.Fill = rgb(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2)
		y := ht * t
		if err := h.Rect(gc, 0, y, w, y+ht/steps+1); err != nil {
			return err
		}
	}

	// Overlapping translucent circles.
	for _, c := range []struct {
		x, y float64
		fill recording.Color
	}{
		{150, 150, rgba(1, 0.3, 0.3, 0.8)},
		{200, 150, rgba(0.3, 1, 0.3, 0.8)},
		{175, 200, rgba(0.3, 0.3, 1, 0.8)},
	} {
		gc.Fill = c.fill
		if err := h.Circle(gc, c.x, c.y, 60); err != nil {
			return err
		}
	}

	// Rounded rectangle with a square stroked outline.
	gc.Fill = rgb(1, 0.8, 0)
	x, y := roundedRect(350, 100, 120, 80, 15)
	if err := h.Polygon(gc, x, y); err != nil {
		return err
	}
	stroke := recording.DefaultGC()
	stroke.Col = recording.White
	stroke.LWD = 4
	if err := h.Rect(stroke, 350, 100, 470, 180); err != nil {
		return err
	}

	// Two chained cubic curves.
	stroke.Col = rgb(1, 0.5, 0)
	stroke.LWD = 6
	x, y = cubic(150, 400, 200, 350, 250, 450, 300, 400, 24)
	x2, y2 := cubic(300, 400, 350, 370, 400, 430, 450, 400, 24)
	x, y = append(x, x2[1:]...), append(y, y2[1:]...)
	if err := h.Polyline(stroke, x, y); err != nil {
		return err
	}

	// Star with a hole cut by the even-odd rule.
	gc.Fill = rgb(1, 1, 0)
	sx, sy := star(550, 400, 60, 30, 5)
	hx, hy := star(550, 400, 20, 10, 5)
	return h.Path(gc, append(sx, hx...), append(sy, hy...), []int{len(sx), len(hx)}, false)
}

func drawRotationPage(h gglive.Callbacks) error {
	w, ht := h.Size()
	if err := h.NewPage(recording.DefaultGC()); err != nil {
		return err
	}
	cx, cy := w/2, ht/2

	gc := recording.DefaultGC()
	gc.Col = recording.Transparent
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		gc.Fill = hsl(float64(i)*45, 0.8, 0.6)
		x, y := square(cx, cy, 60, angle)
		if err := h.Polygon(gc, x, y); err != nil {
			return err
		}
	}

	label := recording.DefaultGC()
	label.CEX = 1.5
	label.FontFace = recording.FaceBold
	return h.Text(label, cx, cy+80, "rotation", 0, 0.5)
}

func drawChartPage(h gglive.Callbacks) error {
	w, ht := h.Size()
	if err := h.NewPage(recording.DefaultGC()); err != nil {
		return err
	}
	gc := recording.DefaultGC()

	const margin = 60
	x0, y0 := float64(margin), ht-margin
	x1, y1 := w-margin/2, float64(margin)/2

	// Axes with tick labels.
	if err := h.Line(gc, x0, y0, x1, y0); err != nil {
		return err
	}
	if err := h.Line(gc, x0, y0, x0, y1); err != nil {
		return err
	}
	for i := 0; i <= 4; i++ {
		tx := x0 + (x1-x0)*float64(i)/4
		if err := h.Line(gc, tx, y0, tx, y0+6); err != nil {
			return err
		}
		if err := h.Text(gc, tx, y0+20, fmt.Sprint(i*5), 0, 0.5); err != nil {
			return err
		}
	}
	if err := h.Text(gc, x0-30, (y0+y1)/2, "sin(x)", -90, 0.5); err != nil {
		return err
	}

	// The plot region clips the series.
	if err := h.Clip(x0, x1, y1, y0); err != nil {
		return err
	}
	const n = 41
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		t := float64(i) / (n - 1)
		xs[i] = x0 + (x1-x0)*t
		ys[i] = (y0+y1)/2 - math.Sin(t*4*math.Pi)*(y0-y1)*0.55
	}
	line := gc
	line.Col = rgb(0.2, 0.4, 0.8)
	line.LWD = 2
	if err := h.Polyline(line, xs, ys); err != nil {
		return err
	}
	pt := gc
	pt.Col = rgb(0.8, 0.2, 0.2)
	pt.Fill = rgba(0.8, 0.2, 0.2, 0.5)
	for i := 0; i < n; i += 4 {
		if err := h.Circle(pt, xs[i], ys[i], 3); err != nil {
			return err
		}
	}
	zero := gc
	zero.LTY = recording.LineTypeDashed
	zero.Col = rgb(0.5, 0.5, 0.5)
	if err := h.Line(zero, x0, (y0+y1)/2, x1, (y0+y1)/2); err != nil {
		return err
	}

	// Legend heatmap outside the plot region.
	if err := h.Clip(0, w, 0, ht); err != nil {
		return err
	}
	const rw, rh = 8, 2
	pixels := make([]uint32, rw*rh)
	for i := range pixels {
		pixels[i] = hsl(float64(i%rw)*30, 0.7, 0.5).Packed()
	}
	title := gc
	title.CEX = 1.2
	if err := h.Text(title, w/2, y1+4, "demo chart", 0, 0.5); err != nil {
		return err
	}
	return h.Raster(gc, pixels, rw, rh, x1-80, y1+20, 80, 10, 0, false)
}

func rgb(r, g, b float64) recording.Color {
	return rgba(r, g, b, 1)
}

func rgba(r, g, b, a float64) recording.Color {
	return recording.Color{R: unit(r), G: unit(g), B: unit(b), A: unit(a)}
}

func unit(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// hsl converts hue in degrees and saturation and lightness in [0, 1].
func hsl(h, s, l float64) recording.Color {
	h = math.Mod(h, 360) / 360
	if s == 0 {
		return rgb(l, l, l)
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return rgb(hue(p, q, h+1.0/3), hue(p, q, h), hue(p, q, h-1.0/3))
}

func hue(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// square returns the corners of a side x side square centered on (cx, cy)
// rotated by angle radians.
func square(cx, cy, side, angle float64) (x, y []float64) {
	sin, cos := math.Sincos(angle)
	d := side / 2
	for _, c := range [][2]float64{{-d, -d}, {d, -d}, {d, d}, {-d, d}} {
		x = append(x, cx+c[0]*cos-c[1]*sin)
		y = append(y, cy+c[0]*sin+c[1]*cos)
	}
	return x, y
}

// star returns the vertices of a star with the given number of points.
func star(cx, cy, outer, inner float64, points int) (x, y []float64) {
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / float64(points)
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x = append(x, cx+r*math.Cos(angle-math.Pi/2))
		y = append(y, cy+r*math.Sin(angle-math.Pi/2))
	}
	return x, y
}

// cubic flattens a cubic Bezier curve into segs+1 points.
func cubic(x0, y0, x1, y1, x2, y2, x3, y3 float64, segs int) (x, y []float64) {
	for i := 0; i <= segs; i++ {
		t := float64(i) / float64(segs)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		x = append(x, a*x0+b*x1+c*x2+d*x3)
		y = append(y, a*y0+b*y1+c*y2+d*y3)
	}
	return x, y
}

// roundedRect returns the outline of a rectangle with corners of radius r
// approximated by quarter circles.
func roundedRect(x, y, w, h, r float64) (xs, ys []float64) {
	const segs = 6
	corners := []struct{ cx, cy, start float64 }{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	for _, c := range corners {
		for i := 0; i <= segs; i++ {
			a := c.start + float64(i)*math.Pi/2/segs
			xs = append(xs, c.cx+r*math.Cos(a))
			ys = append(ys, c.cy+r*math.Sin(a))
		}
	}
	return xs, ys
}
