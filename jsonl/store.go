// Package jsonl persists sequence catalogs as JSON Lines files.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/storyseq/storyseq"
)

// Compile-time interface verification.
var _ storyseq.CatalogStore = (*Store)(nil)

// maxLineSize bounds one catalog record; a full sequence document is one
// line.
const maxLineSize = 16 << 20

// record is one catalog entry on disk.
type record struct {
	Name     string             `json:"name"`
	SavedAt  time.Time          `json:"savedAt"`
	Sequence *storyseq.Sequence `json:"sequence"`
}

// Store persists named sequences in a single JSONL file, one record per
// line. Every write rewrites the whole file; catalogs are small and stay
// human-diffable.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the save-timestamp source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store over the given catalog file path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the catalog entries in file order.
func (s *Store) List(ctx context.Context) ([]storyseq.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, err
	}
	var entries []storyseq.CatalogEntry
	for _, r := range records {
		frames := 0
		if r.Sequence != nil {
			frames = len(r.Sequence.SourcePrompts)
		}
		entries = append(entries, storyseq.CatalogEntry{
			Name:    r.Name,
			Frames:  frames,
			SavedAt: r.SavedAt,
		})
	}
	return entries, nil
}

// Save stores the sequence under the given name, replacing any existing
// entry with that name.
func (s *Store) Save(ctx context.Context, name string, seq *storyseq.Sequence) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("jsonl: name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	entry := record{Name: name, SavedAt: s.now().UTC(), Sequence: seq.Clone()}
	replaced := false
	for i, r := range records {
		if r.Name == name {
			records[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, entry)
	}
	return s.write(records)
}

// Load returns the sequence saved under the given name.
func (s *Store) Load(ctx context.Context, name string) (*storyseq.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Name == name {
			if r.Sequence == nil {
				return storyseq.NewSequence(), nil
			}
			return r.Sequence.Clone(), nil
		}
	}
	return nil, storyseq.ErrNotFound
}

// Delete removes the entry with the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return storyseq.ErrNotFound
	}
	return s.write(kept)
}

// read loads all records. A missing file is an empty catalog.
func (s *Store) read() ([]record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var r record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// write rewrites the catalog file, creating parent directories if needed.
func (s *Store) write(records []record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}

	return nil
}
