// Package recording provides the draw command model and pages of gglive.
//
// A host graphics engine reports each primitive it draws through a callback.
// The device turns every callback into an immutable Command value and appends
// it to the live Page. Pages are replayed to a Backend to produce output,
// typically SVG markup.
//
// # Architecture
//
//   - Command: a closed set of typed primitives (Line, Polyline, Polygon,
//     Path, Rectangle, Circle, Text, Raster, Clip), each carrying a GC
//     snapshot of the graphics state at capture time
//   - Page: append-only list of entries plus clip regions, background and
//     capture size
//   - Backend: receives primitives during Page.Playback
//
// # Rescaling
//
// Playback can target any size. Coordinates scale per axis; line widths,
// radii, font sizes and text advance widths scale by the smaller of the two
// factors, so a page replayed at its capture size is reproduced exactly.
//
//	p := recording.NewPage(200, 100, recording.White)
//	_ = p.Append(recording.NewLine(recording.DefaultGC(), 0, 0, 100, 50))
//	p.Finalize(0, 0)
//
//	b := svg.NewBackend()
//	_ = p.Playback(b, 400, 200) // line now runs to (200, 100)
//
// # Thread Safety
//
// A live Page is not safe for concurrent use; the store serializes access to
// it. Snapshots are immutable and can be replayed from any goroutine.
package recording
