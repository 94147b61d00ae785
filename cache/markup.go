package cache

import "github.com/gogpu/gglive/recording"

// Key identifies one rendering of a page. Len, PageWidth and PageHeight
// pin the page content: a page only grows while live, so a key with the
// current entry count refers to exactly the markup it produced.
type Key struct {
	PageID     uint64
	Len        int
	PageWidth  float64
	PageHeight float64
	Width      float64
	Height     float64
	Variant    string
}

// KeyFor builds the key for rendering p (stable id id) at width x height.
// Variant distinguishes renderer options that change the output.
func KeyFor(id uint64, p *recording.Page, width, height float64, variant string) Key {
	return Key{
		PageID:     id,
		Len:        p.Len(),
		PageWidth:  p.Width(),
		PageHeight: p.Height(),
		Width:      width,
		Height:     height,
		Variant:    variant,
	}
}

// Markup caches rendered page markup.
//
// Markup is safe for concurrent use.
type Markup struct {
	c *ShardedCache[Key, string]
}

// NewMarkup creates a markup cache holding about perShard entries in each
// of its 16 shards. Entries are sharded by page id.
func NewMarkup(perShard int) *Markup {
	return &Markup{
		c: NewSharded[Key, string](perShard, func(k Key) uint64 { return Uint64Hasher(k.PageID) }),
	}
}

// Render returns the cached markup for key, calling render on a miss.
func (m *Markup) Render(key Key, render func() string) string {
	return m.c.GetOrCreate(key, render)
}

// Forget drops every rendering of page id and returns how many there were.
func (m *Markup) Forget(id uint64) int {
	return m.c.DeleteFunc(func(k Key) bool { return k.PageID == id })
}

// Retain drops the renderings of every page not in live.
func (m *Markup) Retain(live map[uint64]bool) int {
	return m.c.DeleteFunc(func(k Key) bool { return !live[k.PageID] })
}

// Clear drops every rendering.
func (m *Markup) Clear() {
	m.c.Clear()
}

// Stats returns cache statistics.
func (m *Markup) Stats() Stats {
	return m.c.Stats()
}
