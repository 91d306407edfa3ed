package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/expect/pkg/ports"
)

// Store implements ports.SchemaStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save keeps a copy of doc under name.
func (s *Store) Save(ctx context.Context, name string, doc []byte) error {
	if err := ports.ValidName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = slices.Clone(doc)
	return nil
}

// Load returns a copy of the stored document, so callers can't mutate the
// store through the returned slice.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ports.ValidName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return nil, ports.ErrSchemaNotFound
	}
	return slices.Clone(doc), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
