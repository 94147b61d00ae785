package store

import "github.com/gogpu/gglive/recording"

// Tx is a view of a Store whose lock is already held. It is valid only
// inside the function passed to Update.
type Tx struct {
	s *Store
}

// BeginPage finalizes the live page, starts a new one and returns its id.
// If the retention bound is exceeded the oldest page is evicted; eviction
// renumbers positional indices but never ids.
func (tx *Tx) BeginPage(width, height float64, bg recording.Color) (uint64, error) {
	s := tx.s
	if s.closed {
		return 0, ErrClosed
	}
	tx.finalizeLive()

	s.lastID++
	s.pages = append(s.pages, slot{id: s.lastID, page: recording.NewPage(width, height, bg)})
	s.live = true

	if s.maxPages != Unbounded && len(s.pages) > s.maxPages {
		n := len(s.pages) - s.maxPages
		for _, p := range s.pages[:n] {
			s.log.Debug("store: page evicted", "id", p.id)
		}
		s.pages = append(s.pages[:0:0], s.pages[n:]...)
	}

	s.bump()
	s.log.Debug("store: page started", "id", s.lastID, "width", width, "height", height)
	return s.lastID, nil
}

// Append adds cmd to the live page, creating one with the default size and
// background first if there is none.
func (tx *Tx) Append(cmd recording.Command) error {
	p, err := tx.livePage()
	if err != nil {
		return err
	}
	if err := p.Append(cmd); err != nil {
		// Only the last page is ever live.
		tx.s.log.Warn("store: append to complete page", "type", cmd.Type(), "err", err)
		return err
	}
	tx.s.bump()
	return nil
}

// SetClip sets the active clip region of the live page, creating a page
// first if there is none.
func (tx *Tx) SetClip(r recording.Rect) error {
	p, err := tx.livePage()
	if err != nil {
		return err
	}
	if err := p.SetClip(r); err != nil {
		tx.s.log.Warn("store: clip on complete page", "err", err)
		return err
	}
	tx.s.bump()
	return nil
}

// Finalize marks the live page complete without starting a new one.
// It reports whether there was a live page.
func (tx *Tx) Finalize() bool {
	if !tx.finalizeLive() {
		return false
	}
	tx.s.bump()
	return true
}

// Current returns a snapshot of the live page.
func (tx *Tx) Current() (Snapshot, bool) {
	s := tx.s
	if !s.live || len(s.pages) == 0 {
		return Snapshot{}, false
	}
	n := len(s.pages)
	last := s.pages[n-1]
	return Snapshot{
		PageInfo: PageInfo{ID: last.id, Index: n},
		Page:     last.page.Snapshot(),
	}, true
}

// Get returns a snapshot of the page matched by sel.
func (tx *Tx) Get(sel Selector) (*recording.Page, error) {
	if tx.s.closed {
		return nil, ErrClosed
	}
	i := tx.s.index(sel)
	if i < 0 {
		return nil, ErrNotFound
	}
	return tx.s.pages[i].page.Snapshot(), nil
}

// Lookup resolves sel to the page identifiers.
func (tx *Tx) Lookup(sel Selector) (PageInfo, error) {
	if tx.s.closed {
		return PageInfo{}, ErrClosed
	}
	i := tx.s.index(sel)
	if i < 0 {
		return PageInfo{}, ErrNotFound
	}
	return PageInfo{ID: tx.s.pages[i].id, Index: i + 1}, nil
}

// Remove deletes the page matched by sel and reports whether one existed.
// Removing the live page leaves the store without one until the next page
// begins.
func (tx *Tx) Remove(sel Selector) bool {
	s := tx.s
	if s.closed {
		return false
	}
	i := s.index(sel)
	if i < 0 {
		return false
	}
	id := s.pages[i].id
	if i == len(s.pages)-1 {
		s.live = false
	}
	s.pages = append(s.pages[:i:i], s.pages[i+1:]...)
	s.bump()
	s.log.Debug("store: page removed", "id", id)
	return true
}

// Clear deletes every page and reports whether there were any.
func (tx *Tx) Clear() bool {
	s := tx.s
	if s.closed || len(s.pages) == 0 {
		return false
	}
	n := len(s.pages)
	s.pages = nil
	s.live = false
	s.bump()
	s.log.Debug("store: cleared", "pages", n)
	return true
}

// List returns up to limit pages starting at the 0-based offset from.
// A negative limit lists every page after from.
func (tx *Tx) List(from, limit int) []PageInfo {
	s := tx.s
	n := len(s.pages)
	from = max(from, 0)
	if from >= n {
		return []PageInfo{}
	}
	end := n
	if limit >= 0 {
		end = min(n, from+limit)
	}
	out := make([]PageInfo, 0, end-from)
	for i := from; i < end; i++ {
		out = append(out, PageInfo{ID: s.pages[i].id, Index: i + 1})
	}
	return out
}

// Snapshots returns a snapshot of every retained page in index order.
func (tx *Tx) Snapshots() []Snapshot {
	s := tx.s
	out := make([]Snapshot, len(s.pages))
	for i, p := range s.pages {
		out[i] = Snapshot{
			PageInfo: PageInfo{ID: p.id, Index: i + 1},
			Page:     p.page.Snapshot(),
		}
	}
	return out
}

// PageCount returns the number of retained pages.
func (tx *Tx) PageCount() int { return len(tx.s.pages) }

// Upid returns the update counter.
func (tx *Tx) Upid() uint64 { return tx.s.upid }

// Info returns the published server configuration.
func (tx *Tx) Info() Info { return tx.s.info }

// SetInfo publishes the server configuration.
func (tx *Tx) SetInfo(info Info) { tx.s.info = info }

// SetDefaultPage changes the size and background of lazily created pages.
func (tx *Tx) SetDefaultPage(width, height float64, bg recording.Color) {
	tx.s.width, tx.s.height, tx.s.bg = width, height, bg
}

// DefaultPage returns the size and background of lazily created pages.
func (tx *Tx) DefaultPage() (width, height float64, bg recording.Color) {
	return tx.s.width, tx.s.height, tx.s.bg
}

// livePage returns the live page, creating it lazily.
func (tx *Tx) livePage() (*recording.Page, error) {
	s := tx.s
	if s.closed {
		return nil, ErrClosed
	}
	if !s.live {
		if _, err := tx.BeginPage(s.width, s.height, s.bg); err != nil {
			return nil, err
		}
	}
	return s.pages[len(s.pages)-1].page, nil
}

// finalizeLive completes the live page at its capture size.
func (tx *Tx) finalizeLive() bool {
	s := tx.s
	if !s.live {
		return false
	}
	s.live = false
	if n := len(s.pages); n > 0 {
		s.pages[n-1].page.Finalize(0, 0)
		return true
	}
	return false
}
