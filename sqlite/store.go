// Package sqlite persists sequence catalogs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/storyseq/storyseq"
	_ "modernc.org/sqlite"
)

// Compile-time interface verification.
var _ storyseq.CatalogStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS catalog (
	name     TEXT PRIMARY KEY,
	frames   INTEGER NOT NULL,
	saved_at TEXT NOT NULL,
	document TEXT NOT NULL
);`

// Store persists named sequences in a SQLite database. The full sequence
// document is stored as one JSON blob per row; frames and saved_at are
// denormalized for cheap listing.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the save-timestamp source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens (creating if needed) the catalog database at the given path.
func Open(path string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog table: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the catalog entries, oldest save first.
func (s *Store) List(ctx context.Context) ([]storyseq.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, frames, saved_at FROM catalog ORDER BY saved_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []storyseq.CatalogEntry
	for rows.Next() {
		var entry storyseq.CatalogEntry
		var savedAt string
		if err := rows.Scan(&entry.Name, &entry.Frames, &savedAt); err != nil {
			return nil, err
		}
		entry.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("entry %q: bad saved_at: %w", entry.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Save stores the sequence under the given name, replacing any existing
// entry with that name.
func (s *Store) Save(ctx context.Context, name string, seq *storyseq.Sequence) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("sqlite: name required")
	}
	if seq == nil {
		seq = storyseq.NewSequence()
	}

	doc, err := json.Marshal(seq)
	if err != nil {
		return fmt.Errorf("marshal sequence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO catalog (name, frames, saved_at, document)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			frames = excluded.frames,
			saved_at = excluded.saved_at,
			document = excluded.document`,
		name, len(seq.SourcePrompts), s.now().UTC().Format(time.RFC3339Nano), string(doc))
	return err
}

// Load returns the sequence saved under the given name.
func (s *Store) Load(ctx context.Context, name string) (*storyseq.Sequence, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM catalog WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storyseq.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var seq storyseq.Sequence
	if err := json.Unmarshal([]byte(doc), &seq); err != nil {
		return nil, fmt.Errorf("entry %q: bad document: %w", name, err)
	}
	return &seq, nil
}

// Delete removes the entry with the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storyseq.ErrNotFound
	}
	return nil
}
