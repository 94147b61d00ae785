package recording

import (
	"image"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one host drawing callback.
type CommandType uint8

const (
	CmdLine     CommandType = iota // Single line segment
	CmdPolyline                    // Open polyline
	CmdPolygon                     // Closed, filled polygon
	CmdPath                        // Compound path of several polygons
	CmdRect                        // Axis-aligned rectangle
	CmdCircle                      // Circle
	CmdText                        // Text string
	CmdRaster                      // Bitmap image
	CmdClip                        // Clip region change
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdLine:     "Line",
	CmdPolyline: "Polyline",
	CmdPolygon:  "Polygon",
	CmdPath:     "Path",
	CmdRect:     "Rect",
	CmdCircle:   "Circle",
	CmdText:     "Text",
	CmdRaster:   "Raster",
	CmdClip:     "Clip",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a recorded drawing primitive.
// The set of implementations is closed: only types in this package
// implement Command. Commands are immutable values; Scale returns a copy.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// Scale returns a copy of the command mapped through s.
	Scale(s Scaler) Command

	commandMarker()
}

// Line is a single segment from (X1, Y1) to (X2, Y2).
type Line struct {
	GC             GC
	X1, Y1, X2, Y2 float64
}

// NewLine records a line segment.
func NewLine(gc GC, x1, y1, x2, y2 float64) Line {
	return Line{GC: gc, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (Line) Type() CommandType { return CmdLine }
func (Line) commandMarker()    {}

// Scale implements Command.
func (c Line) Scale(s Scaler) Command {
	c.X1, c.Y1 = s.Point(c.X1, c.Y1)
	c.X2, c.Y2 = s.Point(c.X2, c.Y2)
	c.GC = c.GC.scaled(s.S)
	return c
}

// Polyline is an open sequence of connected segments.
type Polyline struct {
	GC   GC
	X, Y []float64
}

// NewPolyline records a polyline. The coordinate slices are copied and must
// have equal length.
func NewPolyline(gc GC, x, y []float64) Polyline {
	return Polyline{GC: gc, X: cloneFloats(x), Y: cloneFloats(y)}
}

func (Polyline) Type() CommandType { return CmdPolyline }
func (Polyline) commandMarker()    {}

// Scale implements Command.
func (c Polyline) Scale(s Scaler) Command {
	c.X, c.Y = s.xs(c.X), s.ys(c.Y)
	c.GC = c.GC.scaled(s.S)
	return c
}

// Polygon is a closed polygon, filled with GC.Fill and stroked with GC.Col.
type Polygon struct {
	GC   GC
	X, Y []float64
}

// NewPolygon records a polygon. The coordinate slices are copied.
func NewPolygon(gc GC, x, y []float64) Polygon {
	return Polygon{GC: gc, X: cloneFloats(x), Y: cloneFloats(y)}
}

func (Polygon) Type() CommandType { return CmdPolygon }
func (Polygon) commandMarker()    {}

// Scale implements Command.
func (c Polygon) Scale(s Scaler) Command {
	c.X, c.Y = s.xs(c.X), s.ys(c.Y)
	c.GC = c.GC.scaled(s.S)
	return c
}

// Path is a compound shape made of len(NPer) closed sub-polygons. The first
// NPer[0] points of X/Y belong to the first polygon, and so on.
type Path struct {
	GC   GC
	X, Y []float64
	NPer []int
	// Winding selects the non-zero fill rule; false means even-odd.
	Winding bool
}

// NewPath records a compound path. The slices are copied.
func NewPath(gc GC, x, y []float64, nper []int, winding bool) Path {
	return Path{
		GC:      gc,
		X:       cloneFloats(x),
		Y:       cloneFloats(y),
		NPer:    append([]int(nil), nper...),
		Winding: winding,
	}
}

func (Path) Type() CommandType { return CmdPath }
func (Path) commandMarker()    {}

// Scale implements Command.
func (c Path) Scale(s Scaler) Command {
	c.X, c.Y = s.xs(c.X), s.ys(c.Y)
	c.GC = c.GC.scaled(s.S)
	return c
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	GC   GC
	Rect Rect
}

// NewRect records a rectangle with corners (x0, y0) and (x1, y1).
func NewRect(gc GC, x0, y0, x1, y1 float64) Rectangle {
	return Rectangle{GC: gc, Rect: Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}}
}

func (Rectangle) Type() CommandType { return CmdRect }
func (Rectangle) commandMarker()    {}

// Scale implements Command.
func (c Rectangle) Scale(s Scaler) Command {
	c.Rect = s.Rect(c.Rect)
	c.GC = c.GC.scaled(s.S)
	return c
}

// Circle is a circle centered at (X, Y).
type Circle struct {
	GC   GC
	X, Y float64
	R    float64
}

// NewCircle records a circle.
func NewCircle(gc GC, x, y, r float64) Circle {
	return Circle{GC: gc, X: x, Y: y, R: r}
}

func (Circle) Type() CommandType { return CmdCircle }
func (Circle) commandMarker()    {}

// Scale implements Command.
func (c Circle) Scale(s Scaler) Command {
	c.X, c.Y = s.Point(c.X, c.Y)
	c.R *= s.S
	c.GC = c.GC.scaled(s.S)
	return c
}

// Text is a string drawn with its anchor at (X, Y).
type Text struct {
	GC   GC
	X, Y float64
	Str  string
	// Rot is the rotation in degrees, counter-clockwise.
	Rot float64
	// HAdj is the horizontal adjustment: 0 left, 0.5 centered, 1 right.
	HAdj float64
	Font Font
}

// NewText records a text string. font.Width must already hold the advance
// width of str at font.Size.
func NewText(gc GC, x, y float64, str string, rot, hadj float64, font Font) Text {
	return Text{GC: gc, X: x, Y: y, Str: str, Rot: rot, HAdj: hadj, Font: font}
}

func (Text) Type() CommandType { return CmdText }
func (Text) commandMarker()    {}

// Scale implements Command.
func (c Text) Scale(s Scaler) Command {
	c.X, c.Y = s.Point(c.X, c.Y)
	c.Font.Size *= s.S
	c.Font.Width *= s.S
	c.GC = c.GC.scaled(s.S)
	return c
}

// Raster is a bitmap placed with its bottom-left corner at (X, Y).
type Raster struct {
	GC            GC
	Image         *image.NRGBA
	X, Y          float64
	Width, Height float64
	Rot           float64
	Interpolate   bool
}

// NewRaster records a bitmap of w*h host-packed pixels, row-major from the
// top. The pixel data is copied.
func NewRaster(gc GC, pixels []uint32, w, h int, x, y, width, height, rot float64, interpolate bool) Raster {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h && i < len(pixels); i++ {
		c := FromPacked(pixels[i])
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return Raster{
		GC:          gc,
		Image:       img,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Rot:         rot,
		Interpolate: interpolate,
	}
}

func (Raster) Type() CommandType { return CmdRaster }
func (Raster) commandMarker()    {}

// Scale implements Command. The bitmap itself is shared.
func (c Raster) Scale(s Scaler) Command {
	c.X, c.Y = s.Point(c.X, c.Y)
	c.Width *= s.X
	c.Height *= s.Y
	c.GC = c.GC.scaled(s.S)
	return c
}

// Clip changes the active clip region to Rect.
type Clip struct {
	Rect Rect
}

func (Clip) Type() CommandType { return CmdClip }
func (Clip) commandMarker()    {}

// Scale implements Command.
func (c Clip) Scale(s Scaler) Command {
	c.Rect = s.Rect(c.Rect)
	return c
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append(make([]float64, 0, len(v)), v...)
}
