// Package store persists tracked items in a local SQLite file.
//
// Each row keeps the display text an item was added with and, once the item
// has been viewed, the origin string its relative time is measured from.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cutetime/internal/debug"
	appErrors "cutetime/internal/errors"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

var log = debug.Scope("store")

const schema = `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL,
		origin TEXT,
		created_at TEXT NOT NULL
	);
`

// Store is an open item database.
type Store struct {
	path  string
	db    *sql.DB
	clock clockwork.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock created_at timestamps are read from.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// Open creates path's directory and schema if needed and returns the store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "store path is empty", nil)
	}
	//nolint:gosec // G301: store directory sits next to user config
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "create store directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "open store", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStoreFailed, "ping store", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStoreFailed, "create schema", err)
	}
	log.Logf("opened %s", trimmed)
	s := &Store{path: trimmed, db: db, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts an item with no recorded origin.
func (s *Store) Add(ctx context.Context, label, text string) (*Item, error) {
	created := s.clock.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (label, text, origin, created_at) VALUES (?, ?, NULL, ?)`,
		strings.TrimSpace(label), text, created)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "insert item", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "read item id", err)
	}
	return &Item{ID: id, Label: strings.TrimSpace(label), DisplayText: text, CreatedAt: created}, nil
}

// List returns every item in insertion order.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, text, origin, created_at
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "query items", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "iterate items", err)
	}
	return items, nil
}

// Get returns the item with id.
func (s *Store) Get(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, text, origin, created_at FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("item %d not found", id), nil)
	}
	return item, err
}

// Delete removes the item with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.execOne(ctx, id, "delete item", `DELETE FROM items WHERE id = ?`, id)
}

// ClearOrigin forgets the recorded origin so the next view measures from the
// display text again.
func (s *Store) ClearOrigin(ctx context.Context, id int64) error {
	return s.execOne(ctx, id, "clear origin", `UPDATE items SET origin = NULL WHERE id = ?`, id)
}

// SaveOrigins writes back the origins of items that changed since they were
// loaded. It returns how many rows were written.
func (s *Store) SaveOrigins(ctx context.Context, items []*Item) (int, error) {
	var dirty []*Item
	for _, item := range items {
		if item != nil && item.dirty {
			dirty = append(dirty, item)
		}
	}
	if len(dirty) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, appErrors.New(appErrors.CodeStoreFailed, "begin transaction", err)
	}
	stmt, err := tx.PrepareContext(ctx, `UPDATE items SET origin = ? WHERE id = ?`)
	if err != nil {
		_ = tx.Rollback()
		return 0, appErrors.New(appErrors.CodeStoreFailed, "prepare origin update", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, item := range dirty {
		if _, err := stmt.ExecContext(ctx, item.origin, item.ID); err != nil {
			_ = tx.Rollback()
			return 0, appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("save origin for item %d", item.ID), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, appErrors.New(appErrors.CodeStoreFailed, "commit origins", err)
	}
	for _, item := range dirty {
		item.MarkSaved()
	}
	log.Logf("saved %d origin(s)", len(dirty))
	return len(dirty), nil
}

func (s *Store) execOne(ctx context.Context, id int64, action, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return appErrors.New(appErrors.CodeStoreFailed, action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return appErrors.New(appErrors.CodeStoreFailed, action, err)
	}
	if n == 0 {
		return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("item %d not found", id), nil)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*Item, error) {
	var (
		item   Item
		origin sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Label, &item.DisplayText, &origin, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, appErrors.New(appErrors.CodeStoreFailed, "scan item", err)
	}
	item.origin = origin.String
	item.hasOrigin = origin.Valid
	return &item, nil
}
