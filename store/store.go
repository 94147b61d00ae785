// Package store holds the captured pages of a device: a versioned, indexed
// collection with one live page that the host goroutine draws into.
//
// Pages are addressed either by positional index (1-based, renumbered when
// earlier pages are removed) or by stable id (assigned at creation, strictly
// increasing, never reused). Every mutation increments the update counter
// (upid), which is the signal viewers poll or subscribe to.
//
// All methods are safe for concurrent use. Reads return frozen snapshots, so
// callers may render them without holding the store lock.
package store

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gogpu/gglive/recording"
)

// Store errors.
var (
	// ErrNotFound is returned when a selector matches no page.
	ErrNotFound = errors.New("store: page not found")

	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("store: closed")
)

// Unbounded disables page eviction.
const Unbounded = 0

// Info is the host-visible server configuration published by the store.
type Info struct {
	Host  string
	Port  int
	Token string
}

// PageInfo identifies a page by stable id and current positional index.
type PageInfo struct {
	ID    uint64
	Index int
}

// Snapshot is a frozen page together with its identifiers.
type Snapshot struct {
	PageInfo
	Page *recording.Page
}

type slot struct {
	id   uint64
	page *recording.Page
}

// Store is the plot history of one device.
type Store struct {
	mu sync.Mutex

	pages  []slot
	live   bool // last slot is the live page
	lastID uint64
	upid   uint64
	info   Info
	closed bool

	maxPages      int
	width, height float64
	bg            recording.Color

	subs    map[int]chan uint64
	nextSub int

	log *slog.Logger
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		maxPages: o.maxPages,
		width:    o.width,
		height:   o.height,
		bg:       o.bg,
		subs:     make(map[int]chan uint64),
		log:      o.logger,
	}
}

// Update runs fn while holding the store lock, so that a sequence of
// operations appears atomic to other goroutines. The lock is released on
// every exit path, including a panic in fn.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

// BeginPage finalizes the live page, starts a new one and returns its id.
func (s *Store) BeginPage(width, height float64, bg recording.Color) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).BeginPage(width, height, bg)
}

// Append adds cmd to the live page, creating one first if there is none.
func (s *Store) Append(cmd recording.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).Append(cmd)
}

// SetClip sets the active clip region of the live page.
func (s *Store) SetClip(r recording.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).SetClip(r)
}

// Current returns a snapshot of the live page.
func (s *Store) Current() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).Current()
}

// Get returns a snapshot of the page matched by sel.
func (s *Store) Get(sel Selector) (*recording.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).Get(sel)
}

// Remove deletes the page matched by sel and reports whether one existed.
func (s *Store) Remove(sel Selector) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).Remove(sel)
}

// Clear deletes every page and reports whether there were any.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).Clear()
}

// List returns up to limit pages starting at the 0-based offset from.
// A negative limit lists every page after from.
func (s *Store) List(from, limit int) []PageInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&Tx{s: s}).List(from, limit)
}

// PageCount returns the number of retained pages.
func (s *Store) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Upid returns the update counter.
func (s *Store) Upid() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upid
}

// Info returns the published server configuration.
func (s *Store) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// SetInfo publishes the server configuration.
func (s *Store) SetInfo(info Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close finalizes the live page, releases every page and closes all
// subscriptions. Later writes return ErrClosed. Snapshots already handed
// out stay valid.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	tx := &Tx{s: s}
	tx.finalizeLive()
	s.closed = true
	s.pages = nil
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.log.Debug("store: closed", "upid", s.upid)
}

// bump increments upid and notifies subscribers. Must hold s.mu.
func (s *Store) bump() {
	s.upid++
	for _, ch := range s.subs {
		notify(ch, s.upid)
	}
}

// index returns the position of sel in s.pages, or -1. Must hold s.mu.
func (s *Store) index(sel Selector) int {
	n := len(s.pages)
	if n == 0 {
		return -1
	}
	switch sel.kind {
	case byIndex:
		i := sel.index
		if i == 0 || i == -1 {
			return n - 1
		}
		if i < 1 || i > n {
			return -1
		}
		return i - 1
	case byID:
		for i := n - 1; i >= 0; i-- {
			switch id := s.pages[i].id; {
			case id == sel.id:
				return i
			case id < sel.id:
				return -1
			}
		}
	}
	return -1
}
