// Package archive stores rendered pages of closed devices in SQLite.
//
// Every device close writes one session: the markup of each page the store
// still held, keyed by the page's stable id. Sessions are identified by a
// random UUID.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrUnknownSession is returned by Pages for a session with no pages.
var ErrUnknownSession = errors.New("archive: unknown session")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
    session_id TEXT NOT NULL,
    page_id INTEGER NOT NULL,
    page_index INTEGER NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    svg TEXT NOT NULL,
    PRIMARY KEY (session_id, page_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pages_session ON pages(session_id, page_index);
`

// Page is one archived page.
type Page struct {
	ID     uint64
	Index  int
	Width  float64
	Height float64
	SVG    string
}

// Session summarizes one archived device session.
type Session struct {
	ID        string
	CreatedAt time.Time
	Pages     int
}

// Archive wraps the archive database connection.
type Archive struct {
	conn *sql.DB
	path string
}

// Open opens the archive at path, creating the file and schema if needed.
// ":memory:" opens a private in-memory archive.
func Open(path string) (*Archive, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("archive: create dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("archive: enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("archive: set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA foreign_keys=ON")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}
	return &Archive{conn: conn, path: path}, nil
}

// Path returns the path the archive was opened with.
func (a *Archive) Path() string {
	return a.path
}

// NewSession returns a fresh session id.
func NewSession() string {
	return uuid.NewString()
}

// SavePages stores pages under session in one transaction. Saving a page id
// twice in the same session replaces the earlier markup.
func (a *Archive) SavePages(ctx context.Context, session string, pages []Page) error {
	if _, err := uuid.Parse(session); err != nil {
		return fmt.Errorf("archive: session id %q: %w", session, err)
	}

	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, created_at) VALUES (?, ?)`,
		session, time.Now().UTC()); err != nil {
		return fmt.Errorf("archive: insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO pages (session_id, page_id, page_index, width, height, svg)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, session, int64(p.ID), p.Index, p.Width, p.Height, p.SVG); err != nil {
			return fmt.Errorf("archive: insert page %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Sessions lists archived sessions, newest first.
func (a *Archive) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := a.conn.QueryContext(ctx, `
		SELECT s.id, s.created_at, COUNT(p.page_id)
		FROM sessions s LEFT JOIN pages p ON p.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("archive: query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Pages); err != nil {
			return nil, fmt.Errorf("archive: scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Pages returns the pages of session in positional order.
func (a *Archive) Pages(ctx context.Context, session string) ([]Page, error) {
	rows, err := a.conn.QueryContext(ctx, `
		SELECT page_id, page_index, width, height, svg
		FROM pages WHERE session_id = ?
		ORDER BY page_index`, session)
	if err != nil {
		return nil, fmt.Errorf("archive: query pages: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var (
			p  Page
			id int64
		)
		if err := rows.Scan(&id, &p.Index, &p.Width, &p.Height, &p.SVG); err != nil {
			return nil, fmt.Errorf("archive: scan page: %w", err)
		}
		p.ID = uint64(id)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrUnknownSession
	}
	return out, nil
}

// Close checkpoints the WAL and closes the database connection.
func (a *Archive) Close() error {
	a.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return a.conn.Close()
}
