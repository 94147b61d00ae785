package recording

import "math"

// Rect is an axis-aligned rectangle in device units given by two corners.
// The corners are not required to be ordered.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Normalize returns the rectangle with X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns the absolute width of the rectangle.
func (r Rect) Width() float64 {
	n := r.Normalize()
	return n.X1 - n.X0
}

// Height returns the absolute height of the rectangle.
func (r Rect) Height() float64 {
	n := r.Normalize()
	return n.Y1 - n.Y0
}

// Scaler maps capture coordinates to output coordinates.
// X and Y scale independently; S scales lengths that have no direction
// (line widths, radii, font sizes).
type Scaler struct {
	X, Y, S float64
}

// Identity leaves every coordinate unchanged.
var Identity = Scaler{X: 1, Y: 1, S: 1}

// NewScaler returns the scaler that maps a from-sized page onto a to-sized
// one. Non-positive or non-finite target sizes keep the source size on that
// axis.
func NewScaler(fromW, fromH, toW, toH float64) Scaler {
	sx, sy := 1.0, 1.0
	if finite(toW) && toW > 0 && fromW > 0 {
		sx = toW / fromW
	}
	if finite(toH) && toH > 0 && fromH > 0 {
		sy = toH / fromH
	}
	return Scaler{X: sx, Y: sy, S: min(sx, sy)}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsIdentity reports whether the scaler leaves coordinates unchanged.
func (s Scaler) IsIdentity() bool {
	return s.X == 1 && s.Y == 1 && s.S == 1
}

// Point scales a point.
func (s Scaler) Point(x, y float64) (float64, float64) {
	return x * s.X, y * s.Y
}

// Rect scales a rectangle.
func (s Scaler) Rect(r Rect) Rect {
	return Rect{X0: r.X0 * s.X, Y0: r.Y0 * s.Y, X1: r.X1 * s.X, Y1: r.Y1 * s.Y}
}

// xs returns a scaled copy of v.
func (s Scaler) xs(v []float64) []float64 {
	return scaleSlice(v, s.X)
}

// ys returns a scaled copy of v.
func (s Scaler) ys(v []float64) []float64 {
	return scaleSlice(v, s.Y)
}

func scaleSlice(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}
