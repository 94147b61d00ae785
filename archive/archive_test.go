package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSaveAndLoadPages(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	session := NewSession()

	pages := []Page{
		{ID: 3, Index: 2, Width: 720, Height: 576, SVG: "<svg>b</svg>"},
		{ID: 1, Index: 1, Width: 720, Height: 576, SVG: "<svg>a</svg>"},
	}
	if err := a.SavePages(ctx, session, pages); err != nil {
		t.Fatalf("SavePages() = %v", err)
	}

	got, err := a.Pages(ctx, session)
	if err != nil {
		t.Fatalf("Pages() = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Pages() returned %d pages, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Pages() ids = %d, %d, want 1, 3", got[0].ID, got[1].ID)
	}
	if got[1].SVG != "<svg>b</svg>" || got[1].Width != 720 {
		t.Errorf("Pages()[1] = %+v", got[1])
	}
}

func TestSavePagesReplaces(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	session := NewSession()

	if err := a.SavePages(ctx, session, []Page{{ID: 1, Index: 1, SVG: "old"}}); err != nil {
		t.Fatal(err)
	}
	if err := a.SavePages(ctx, session, []Page{{ID: 1, Index: 1, SVG: "new"}}); err != nil {
		t.Fatal(err)
	}
	got, err := a.Pages(ctx, session)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].SVG != "new" {
		t.Errorf("Pages() = %+v, want one page with new markup", got)
	}
}

func TestSavePagesInvalidSession(t *testing.T) {
	a := newTestArchive(t)
	if err := a.SavePages(context.Background(), "not-a-uuid", nil); err == nil {
		t.Error("SavePages(invalid session) = nil error")
	}
}

func TestSessions(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	if got, err := a.Sessions(ctx); err != nil || len(got) != 0 {
		t.Fatalf("Sessions() on empty archive = %v, %v", got, err)
	}

	s1, s2 := NewSession(), NewSession()
	if err := a.SavePages(ctx, s1, []Page{{ID: 1, Index: 1}, {ID: 2, Index: 2}}); err != nil {
		t.Fatal(err)
	}
	if err := a.SavePages(ctx, s2, nil); err != nil {
		t.Fatal(err)
	}

	got, err := a.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Sessions() returned %d sessions, want 2", len(got))
	}
	counts := map[string]int{}
	for _, s := range got {
		counts[s.ID] = s.Pages
	}
	if counts[s1] != 2 || counts[s2] != 0 {
		t.Errorf("page counts = %v, want %s:2 %s:0", counts, s1, s2)
	}
}

func TestPagesUnknownSession(t *testing.T) {
	a := newTestArchive(t)
	if _, err := a.Pages(context.Background(), NewSession()); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("Pages(unknown) = %v, want ErrUnknownSession", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive.db")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	session := NewSession()
	if err := a.SavePages(context.Background(), session, []Page{{ID: 7, Index: 1, SVG: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	got, err := again.Pages(context.Background(), session)
	if err != nil || len(got) != 1 || got[0].ID != 7 {
		t.Errorf("Pages() after reopen = %+v, %v", got, err)
	}
}
