package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the tracking registry as a single JSON document,
// loaded and saved wholesale. The store owns all access to the file:
// command handlers and the poll cycle both go through Update/View, so
// a load-mutate-save sequence can never interleave with another.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// load reads the registry from disk. A missing file yields an empty
// default registry, never an error.
func (s *Store) load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking data: %w", err)
	}

	reg := NewRegistry()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse tracking data: %w", err)
	}
	return reg, nil
}

// save writes the full registry to disk atomically, creating the data
// directory if needed
func (s *Store) save(reg *Registry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracking data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write tracking data: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace tracking data: %w", err)
	}
	return nil
}

// Update runs fn against the current registry under the store lock.
// The registry is persisted only when fn reports a mutation and
// returns no error. A load failure aborts without calling fn.
func (s *Store) Update(fn func(reg *Registry) (dirty bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}

	dirty, err := fn(reg)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	return s.save(reg)
}

// View runs fn against a read-only snapshot of the registry under the
// store lock
func (s *Store) View(fn func(reg *Registry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.load()
	if err != nil {
		return err
	}
	fn(reg)
	return nil
}
