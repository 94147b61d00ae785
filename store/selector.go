package store

import "strconv"

type selectorKind uint8

const (
	byIndex selectorKind = iota
	byID
)

// Selector picks a page either by positional index or by stable id.
type Selector struct {
	kind  selectorKind
	index int
	id    uint64
}

// Last selects the most recently created page.
var Last = Index(0)

// Index selects a page by 1-based position. 0 and -1 select the most
// recently created page.
func Index(i int) Selector {
	return Selector{kind: byIndex, index: i}
}

// ID selects a page by stable id.
func ID(id uint64) Selector {
	return Selector{kind: byID, id: id}
}

// String returns "index:N", "id:N" or "last".
func (s Selector) String() string {
	switch {
	case s.kind == byID:
		return "id:" + strconv.FormatUint(s.id, 10)
	case s.index == 0 || s.index == -1:
		return "last"
	default:
		return "index:" + strconv.Itoa(s.index)
	}
}
