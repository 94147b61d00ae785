package recording

import "errors"

// ErrPageComplete is returned when a command is appended to a page that is
// no longer live.
var ErrPageComplete = errors.New("recording: page is complete")

// ClipRef identifies a clip region within a page.
type ClipRef int

// NoClip marks commands drawn without an active clip region.
const NoClip ClipRef = -1

// Entry is a drawing command together with the clip region that was active
// when it was appended.
type Entry struct {
	Cmd  Command
	Clip ClipRef
}

// Page is one captured plot: an append-only list of commands, the clip
// regions they reference, the background and the capture size.
//
// A Page is live until Finalize is called. Only the host goroutine may call
// Append, SetClip and Finalize, and only under the store lock; readers work on
// a Snapshot.
type Page struct {
	width, height float64
	bg            Color

	entries []Entry
	clips   []Rect
	active  ClipRef

	complete bool
	frozen   bool
}

// NewPage creates a live page of the given capture size and background.
func NewPage(width, height float64, bg Color) *Page {
	return &Page{
		width:   width,
		height:  height,
		bg:      bg,
		entries: make([]Entry, 0, 64),
		active:  NoClip,
	}
}

// Append adds a command to the page. A Clip command changes the active clip
// region instead of adding an entry.
func (p *Page) Append(cmd Command) error {
	if p.complete || p.frozen {
		return ErrPageComplete
	}
	if c, ok := cmd.(Clip); ok {
		p.setClip(c.Rect)
		return nil
	}
	p.entries = append(p.entries, Entry{Cmd: cmd, Clip: p.active})
	return nil
}

// SetClip makes r the active clip region for subsequent commands.
// Setting the region that is already active is a no-op.
func (p *Page) SetClip(r Rect) error {
	if p.complete || p.frozen {
		return ErrPageComplete
	}
	p.setClip(r)
	return nil
}

func (p *Page) setClip(r Rect) {
	r = r.Normalize()
	if p.active != NoClip && p.clips[p.active] == r {
		return
	}
	p.clips = append(p.clips, r)
	p.active = ClipRef(len(p.clips) - 1)
}

// Finalize marks the page complete and fixes its final size.
// Calling Finalize on a complete page is a no-op.
func (p *Page) Finalize(width, height float64) {
	if p.complete || p.frozen {
		return
	}
	if width > 0 {
		p.width = width
	}
	if height > 0 {
		p.height = height
	}
	p.complete = true
}

// Snapshot returns an immutable view of the page as it is now.
// The snapshot shares command storage with p; later appends to p are not
// visible through it.
func (p *Page) Snapshot() *Page {
	n, k := len(p.entries), len(p.clips)
	return &Page{
		width:    p.width,
		height:   p.height,
		bg:       p.bg,
		entries:  p.entries[:n:n],
		clips:    p.clips[:k:k],
		active:   p.active,
		complete: p.complete,
		frozen:   true,
	}
}

// Width returns the capture width in device units.
func (p *Page) Width() float64 { return p.width }

// Height returns the capture height in device units.
func (p *Page) Height() float64 { return p.height }

// Background returns the page background.
func (p *Page) Background() Color { return p.bg }

// Len returns the number of drawing entries.
func (p *Page) Len() int { return len(p.entries) }

// Entries returns the drawing entries. The slice must not be modified.
func (p *Page) Entries() []Entry { return p.entries }

// Clips returns the clip regions referenced by entries.
// The slice must not be modified.
func (p *Page) Clips() []Rect { return p.clips }

// Complete reports whether capture of the page has finished.
func (p *Page) Complete() bool { return p.complete }

// Frozen reports whether p is a snapshot.
func (p *Page) Frozen() bool { return p.frozen }

// Playback replays the page to b at the requested size. A non-positive
// width or height keeps the capture size on that axis.
func (p *Page) Playback(b Backend, width, height float64) error {
	s := NewScaler(p.width, p.height, width, height)
	if err := b.Begin(p.width*s.X, p.height*s.Y, p.bg); err != nil {
		return err
	}

	cur := NoClip
	for _, e := range p.entries {
		if e.Clip != cur {
			cur = e.Clip
			if cur == NoClip {
				b.ClearClip()
			} else {
				b.SetClip(cur, s.Rect(p.clips[cur]))
			}
		}

		cmd := e.Cmd
		if !s.IsIdentity() {
			cmd = cmd.Scale(s)
		}
		switch c := cmd.(type) {
		case Line:
			b.Line(c)
		case Polyline:
			b.Polyline(c)
		case Polygon:
			b.Polygon(c)
		case Path:
			b.Path(c)
		case Rectangle:
			b.Rect(c)
		case Circle:
			b.Circle(c)
		case Text:
			b.Text(c)
		case Raster:
			b.Raster(c)
		}
	}

	return b.End()
}
