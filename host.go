package gglive

import (
	"github.com/gogpu/gglive/recording"
	"github.com/gogpu/gglive/store"
	"github.com/gogpu/gglive/text"
)

// Callbacks is the device interface a graphics host draws through. All
// calls come from the host goroutine, one at a time. Coordinates are in
// device units with the origin at the top left.
type Callbacks interface {
	NewPage(gc recording.GC) error
	Line(gc recording.GC, x1, y1, x2, y2 float64) error
	Polyline(gc recording.GC, x, y []float64) error
	Polygon(gc recording.GC, x, y []float64) error
	Path(gc recording.GC, x, y []float64, nper []int, winding bool) error
	Rect(gc recording.GC, x0, y0, x1, y1 float64) error
	Circle(gc recording.GC, x, y, r float64) error
	Text(gc recording.GC, x, y float64, str string, rot, hadj float64) error
	Raster(gc recording.GC, pixels []uint32, w, h int, x, y, width, height, rot float64, interpolate bool) error
	Clip(x0, x1, y0, y1 float64) error
	Mode(mode int)
	Size() (width, height float64)
	StrWidth(gc recording.GC, str string) float64
	MetricInfo(gc recording.GC, c rune) text.GlyphMetrics
	Close() error
}

var _ Callbacks = (*Host)(nil)

// Host implements Callbacks for a Device.
//
// Every callback runs queued host work on its way out, so work scheduled
// with Device.Shutdown runs as soon as the host draws again. Entering a
// callback while another goroutine is inside one panics with
// ErrHostCallbackViolation.
type Host struct {
	d             *Device
	width, height float64
}

func newHost(d *Device) *Host {
	return &Host{d: d, width: d.cfg.Width, height: d.cfg.Height}
}

// GC returns the graphics context of a fresh device: recording.DefaultGC
// with the configured point size.
func (h *Host) GC() recording.GC {
	gc := recording.DefaultGC()
	gc.PS = h.d.cfg.PointSize
	return gc
}

// enter marks the start of a callback. The returned function ends it and
// runs queued host work.
func (h *Host) enter() func() {
	exit := h.d.bridge.Enter()
	return func() {
		exit()
		h.d.bridge.Tick()
	}
}

// NewPage starts a page at the current size. The page background is the
// fill color of gc, or the configured background if the fill is
// transparent.
func (h *Host) NewPage(gc recording.GC) error {
	defer h.enter()()
	bg := gc.Fill
	if bg.IsTransparent() {
		bg = h.d.cfg.background()
	}

	var live map[uint64]bool
	err := h.d.bridge.WithStoreLock(func(tx *store.Tx) error {
		if _, err := tx.BeginPage(h.width, h.height, bg); err != nil {
			return err
		}
		if h.d.cfg.MaxPages != store.Unbounded {
			live = make(map[uint64]bool, tx.PageCount())
			for _, p := range tx.List(0, -1) {
				live[p.ID] = true
			}
		}
		return nil
	})
	if err != nil {
		return serviceError(err)
	}
	if live != nil {
		h.d.markup.Retain(live)
	}
	return nil
}

// Line draws a line segment.
func (h *Host) Line(gc recording.GC, x1, y1, x2, y2 float64) error {
	defer h.enter()()
	return h.append(recording.NewLine(gc, x1, y1, x2, y2))
}

// Polyline draws an open polyline.
func (h *Host) Polyline(gc recording.GC, x, y []float64) error {
	defer h.enter()()
	return h.append(recording.NewPolyline(gc, x, y))
}

// Polygon draws a closed, filled polygon.
func (h *Host) Polygon(gc recording.GC, x, y []float64) error {
	defer h.enter()()
	return h.append(recording.NewPolygon(gc, x, y))
}

// Path draws a compound path of len(nper) closed polygons; nper[i] is the
// number of points of polygon i.
func (h *Host) Path(gc recording.GC, x, y []float64, nper []int, winding bool) error {
	defer h.enter()()
	return h.append(recording.NewPath(gc, x, y, nper, winding))
}

// Rect draws a rectangle given by two corners.
func (h *Host) Rect(gc recording.GC, x0, y0, x1, y1 float64) error {
	defer h.enter()()
	return h.append(recording.NewRect(gc, x0, y0, x1, y1))
}

// Circle draws a circle.
func (h *Host) Circle(gc recording.GC, x, y, r float64) error {
	defer h.enter()()
	return h.append(recording.NewCircle(gc, x, y, r))
}

// Text draws str anchored at (x, y). The advance width is measured now and
// stored with the command.
func (h *Host) Text(gc recording.GC, x, y float64, str string, rot, hadj float64) error {
	defer h.enter()()
	return h.append(recording.NewText(gc, x, y, str, rot, hadj, h.font(gc, str)))
}

// Raster draws a w x h bitmap of host-packed pixels scaled to
// width x height with its bottom-left corner at (x, y).
func (h *Host) Raster(gc recording.GC, pixels []uint32, w, hgt int, x, y, width, height, rot float64, interpolate bool) error {
	defer h.enter()()
	return h.append(recording.NewRaster(gc, pixels, w, hgt, x, y, width, height, rot, interpolate))
}

// Clip sets the clip region for subsequent drawing.
func (h *Host) Clip(x0, x1, y0, y1 float64) error {
	defer h.enter()()
	r := recording.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	return serviceError(h.d.bridge.WithStoreLock(func(tx *store.Tx) error {
		return tx.SetClip(r)
	}))
}

// Mode is called with 1 when the host starts drawing and 0 when it stops.
// Stopping runs queued host work.
func (h *Host) Mode(mode int) {
	exit := h.d.bridge.Enter()
	exit()
	if mode == 0 {
		h.d.bridge.Tick()
	}
}

// Size returns the size of the device.
func (h *Host) Size() (width, height float64) {
	defer h.enter()()
	return h.width, h.height
}

// Resize sets the size of the next page, including pages created lazily by
// drawing without NewPage.
func (h *Host) Resize(width, height float64) error {
	defer h.enter()()
	if width <= 0 || height <= 0 {
		return nil
	}
	h.width, h.height = width, height
	bg := h.d.cfg.background()
	return serviceError(h.d.bridge.WithStoreLock(func(tx *store.Tx) error {
		tx.SetDefaultPage(width, height, bg)
		return nil
	}))
}

// StrWidth returns the advance width of str in the font of gc.
func (h *Host) StrWidth(gc recording.GC, str string) float64 {
	defer h.enter()()
	return h.d.resolver.Measure(str, gc.FontFamily, gc.FontFace, gc.FontSize())
}

// MetricInfo returns the metrics of glyph c in the font of gc. Rune 0
// asks for the metrics of 'M'; a negative c is the code point -c.
func (h *Host) MetricInfo(gc recording.GC, c rune) text.GlyphMetrics {
	defer h.enter()()
	if c < 0 {
		c = -c
	}
	src, index := h.d.resolver.Resolve(gc.FontFamily, gc.FontFace, nil)
	return text.MetricInfo(c, src, index, gc.FontSize())
}

// Close closes the device from the host goroutine.
func (h *Host) Close() error {
	defer h.enter()()
	return h.d.Close()
}

func (h *Host) append(cmd recording.Command) error {
	return serviceError(h.d.bridge.WithStoreLock(func(tx *store.Tx) error {
		return tx.Append(cmd)
	}))
}

func (h *Host) font(gc recording.GC, str string) recording.Font {
	size := gc.FontSize()
	return recording.Font{
		Family: gc.FontFamily,
		Name:   h.d.resolver.FontName(gc.FontFamily, gc.FontFace, nil),
		Face:   gc.FontFace,
		Size:   size,
		Width:  h.d.resolver.Measure(str, gc.FontFamily, gc.FontFace, size),
	}
}
