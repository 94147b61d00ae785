package recording

// Backend is the interface that all output backends implement.
// Page.Playback drives a Backend with commands that have already been mapped
// to the output size, so backends never rescale.
type Backend interface {
	// Begin starts a document of the given size with the given background.
	Begin(width, height float64, bg Color) error

	// End finalizes the document.
	End() error

	// SetClip makes r the clip region for subsequent primitives. ref is
	// unique per region within one playback.
	SetClip(ref ClipRef, r Rect)

	// ClearClip removes any clipping region.
	ClearClip()

	Line(c Line)
	Polyline(c Polyline)
	Polygon(c Polygon)
	Path(c Path)
	Rect(c Rectangle)
	Circle(c Circle)
	Text(c Text)
	Raster(c Raster)
}
