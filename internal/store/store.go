// Package store persists template schemas in an embedded badger index.
// One writer owns the index at a time; badger's directory lock enforces
// that, which is what lets concurrent fill jobs read safely.
package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jackzampolin/stencil/internal/engine"
)

// ErrNotFound is returned when no template with the requested name has
// been registered.
var ErrNotFound = errors.New("template not found")

// Template is the stored unit: the inferred schema plus the location of
// the cleaned, reusable copy of the source document.
type Template struct {
	Name        string `badgerhold:"key"`
	SourceFile  string
	CleanedPath string
	Schema      engine.TemplateSchema
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store wraps the badgerhold index.
type Store struct {
	db *badgerhold.Store
}

// Open opens (creating if necessary) the index at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	opts := badgerhold.DefaultOptions
	opts.Options = badger.DefaultOptions(dir).
		WithLogger(nil).
		WithIndexCacheSize(16 << 20)

	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening template index: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the index and its directory lock.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put upserts a template by name, stamping timestamps.
func (s *Store) Put(t *Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		if prev, err := s.Get(t.Name); err == nil {
			t.CreatedAt = prev.CreatedAt
		} else {
			t.CreatedAt = now
		}
	}
	t.UpdatedAt = now
	if err := s.db.Upsert(t.Name, t); err != nil {
		return fmt.Errorf("saving template %q: %w", t.Name, err)
	}
	return nil
}

// Get fetches one template by name.
func (s *Store) Get(name string) (*Template, error) {
	var t Template
	if err := s.db.Get(name, &t); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("loading template %q: %w", name, err)
	}
	return &t, nil
}

// List returns all registered templates ordered by name.
func (s *Store) List() ([]*Template, error) {
	var out []*Template
	q := badgerhold.Where("Name").Ne("").SortBy("Name")
	if err := s.db.Find(&out, q); err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return out, nil
}

// Delete removes a template by name.
func (s *Store) Delete(name string) error {
	if err := s.db.Delete(name, Template{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("deleting template %q: %w", name, err)
	}
	return nil
}
