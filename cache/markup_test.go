package cache

import (
	"testing"

	"github.com/gogpu/gglive/recording"
)

func TestMarkupRender(t *testing.T) {
	m := NewMarkup(4)
	p := recording.NewPage(200, 100, recording.White)
	_ = p.Append(recording.NewLine(recording.DefaultGC(), 0, 0, 1, 1))

	renders := 0
	render := func() string { renders++; return "svg" }

	key := KeyFor(1, p.Snapshot(), -1, -1, "")
	m.Render(key, render)
	m.Render(key, render)
	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}

	// New content changes the key.
	_ = p.Append(recording.NewLine(recording.DefaultGC(), 1, 1, 2, 2))
	m.Render(KeyFor(1, p.Snapshot(), -1, -1, ""), render)
	if renders != 2 {
		t.Errorf("renders after append = %d, want 2", renders)
	}

	// So do size and variant.
	m.Render(KeyFor(1, p.Snapshot(), 400, 200, ""), render)
	m.Render(KeyFor(1, p.Snapshot(), 400, 200, "fixed"), render)
	if renders != 4 {
		t.Errorf("renders = %d, want 4", renders)
	}
}

func TestMarkupForget(t *testing.T) {
	m := NewMarkup(8)
	p := recording.NewPage(10, 10, recording.White)
	for id := uint64(1); id <= 3; id++ {
		m.Render(KeyFor(id, p, -1, -1, ""), func() string { return "a" })
		m.Render(KeyFor(id, p, 20, 20, ""), func() string { return "b" })
	}

	if n := m.Forget(2); n != 2 {
		t.Errorf("Forget(2) = %d, want 2", n)
	}
	if n := m.Retain(map[uint64]bool{3: true}); n != 2 {
		t.Errorf("Retain() = %d, want 2", n)
	}
	if l := m.Stats().Len; l != 2 {
		t.Errorf("Len = %d, want 2", l)
	}
	m.Clear()
	if l := m.Stats().Len; l != 0 {
		t.Errorf("Len after Clear = %d, want 0", l)
	}
}
