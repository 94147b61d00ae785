package recording

import (
	"testing"
)

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  CommandType
		want string
	}{
		{CmdLine, "Line"},
		{CmdPolyline, "Polyline"},
		{CmdPolygon, "Polygon"},
		{CmdPath, "Path"},
		{CmdRect, "Rect"},
		{CmdCircle, "Circle"},
		{CmdText, "Text"},
		{CmdRaster, "Raster"},
		{CmdClip, "Clip"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestCommandTypes(t *testing.T) {
	gc := DefaultGC()
	tests := []struct {
		cmd  Command
		want CommandType
	}{
		{NewLine(gc, 0, 0, 1, 1), CmdLine},
		{NewPolyline(gc, []float64{0, 1}, []float64{0, 1}), CmdPolyline},
		{NewPolygon(gc, []float64{0, 1, 1}, []float64{0, 0, 1}), CmdPolygon},
		{NewPath(gc, []float64{0, 1, 1}, []float64{0, 0, 1}, []int{3}, true), CmdPath},
		{NewRect(gc, 0, 0, 1, 1), CmdRect},
		{NewCircle(gc, 0, 0, 1), CmdCircle},
		{NewText(gc, 0, 0, "a", 0, 0, Font{}), CmdText},
		{NewRaster(gc, []uint32{0}, 1, 1, 0, 0, 1, 1, 0, false), CmdRaster},
		{Clip{}, CmdClip},
	}
	for _, tt := range tests {
		if got := tt.cmd.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestConstructorsCopySlices(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	nper := []int{3}

	pl := NewPolyline(DefaultGC(), x, y)
	pa := NewPath(DefaultGC(), x, y, nper, false)

	x[0], y[0], nper[0] = 100, 100, 100

	if pl.X[0] != 1 || pl.Y[0] != 4 {
		t.Errorf("Polyline aliases caller slices: X[0]=%v Y[0]=%v", pl.X[0], pl.Y[0])
	}
	if pa.X[0] != 1 || pa.NPer[0] != 3 {
		t.Errorf("Path aliases caller slices: X[0]=%v NPer[0]=%v", pa.X[0], pa.NPer[0])
	}
}

func TestLineScale(t *testing.T) {
	gc := DefaultGC()
	gc.LWD = 2
	l := NewLine(gc, 0, 0, 100, 50)

	got := l.Scale(NewScaler(200, 100, 400, 200)).(Line)
	if got.X1 != 0 || got.Y1 != 0 || got.X2 != 200 || got.Y2 != 100 {
		t.Errorf("scaled line = (%v,%v)-(%v,%v), want (0,0)-(200,100)", got.X1, got.Y1, got.X2, got.Y2)
	}
	if got.GC.LWD != 4 {
		t.Errorf("scaled LWD = %v, want 4", got.GC.LWD)
	}
	if l.X2 != 100 || l.GC.LWD != 2 {
		t.Error("Scale modified the original command")
	}
}

func TestPolylineScaleDoesNotAlias(t *testing.T) {
	pl := NewPolyline(DefaultGC(), []float64{1, 2}, []float64{3, 4})
	got := pl.Scale(Scaler{X: 2, Y: 3, S: 2}).(Polyline)

	if got.X[1] != 4 || got.Y[1] != 12 {
		t.Errorf("scaled polyline = %v/%v", got.X, got.Y)
	}
	if pl.X[1] != 2 || pl.Y[1] != 4 {
		t.Errorf("original polyline changed: %v/%v", pl.X, pl.Y)
	}
}

func TestTextScale(t *testing.T) {
	txt := NewText(DefaultGC(), 10, 20, "hello", 90, 0.5, Font{Size: 12, Width: 30})
	got := txt.Scale(Scaler{X: 2, Y: 4, S: 2}).(Text)

	if got.X != 20 || got.Y != 80 {
		t.Errorf("anchor = (%v,%v), want (20,80)", got.X, got.Y)
	}
	if got.Font.Size != 24 || got.Font.Width != 60 {
		t.Errorf("font size/width = %v/%v, want 24/60", got.Font.Size, got.Font.Width)
	}
	if got.Rot != 90 || got.HAdj != 0.5 {
		t.Errorf("rot/hadj changed: %v/%v", got.Rot, got.HAdj)
	}
}

func TestCircleScaleUsesUniformFactor(t *testing.T) {
	c := NewCircle(DefaultGC(), 10, 10, 5)
	got := c.Scale(NewScaler(100, 100, 200, 300)).(Circle)

	if got.X != 20 || got.Y != 30 {
		t.Errorf("center = (%v,%v), want (20,30)", got.X, got.Y)
	}
	if got.R != 10 {
		t.Errorf("R = %v, want 10", got.R)
	}
}

func TestNewRasterConvertsPixels(t *testing.T) {
	red := Color{R: 255, A: 255}.Packed()
	blue := Color{B: 255, A: 128}.Packed()

	r := NewRaster(DefaultGC(), []uint32{red, blue}, 2, 1, 0, 10, 20, 10, 0, true)

	if r.Image.Bounds().Dx() != 2 || r.Image.Bounds().Dy() != 1 {
		t.Fatalf("image bounds = %v, want 2x1", r.Image.Bounds())
	}
	if got := r.Image.NRGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Errorf("pixel 0 = %+v, want opaque red", got)
	}
	if got := r.Image.NRGBAAt(1, 0); got.B != 255 || got.A != 128 {
		t.Errorf("pixel 1 = %+v, want half transparent blue", got)
	}
}

func TestLineTypeDashes(t *testing.T) {
	tests := []struct {
		lt   LineType
		want []int
	}{
		{LineTypeSolid, nil},
		{LineTypeBlank, nil},
		{LineTypeDashed, []int{4, 4}},
		{LineTypeDotted, []int{3, 1}},
		{LineTypeDotDash, []int{3, 4, 3, 1}},
	}
	for _, tt := range tests {
		got := tt.lt.Dashes()
		if len(got) != len(tt.want) {
			t.Errorf("LineType(%#x).Dashes() = %v, want %v", int32(tt.lt), got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LineType(%#x).Dashes() = %v, want %v", int32(tt.lt), got, tt.want)
				break
			}
		}
	}
}

func TestFontFace(t *testing.T) {
	if !FaceBoldItalic.IsBold() || !FaceBoldItalic.IsItalic() {
		t.Error("FaceBoldItalic should be bold and italic")
	}
	if FacePlain.IsBold() || FacePlain.IsItalic() {
		t.Error("FacePlain should be neither bold nor italic")
	}
	if FaceSymbol.IsBold() {
		t.Error("FaceSymbol should not be bold")
	}
}
