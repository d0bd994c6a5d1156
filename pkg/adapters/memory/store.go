// Package memory implements ports.ResultStore in process memory. Useful for
// tests and single-run CLI sessions.
package memory

import (
	"context"
	"sync"

	"github.com/hepworks/nllfit/pkg/domain"
)

// Store is a concurrency-safe in-memory result store.
type Store struct {
	mu      sync.RWMutex
	results map[string]domain.FitResult
}

// New creates an empty store.
func New() *Store {
	return &Store{results: make(map[string]domain.FitResult)}
}

// Save stores a copy of the result under id.
func (s *Store) Save(ctx context.Context, id string, res *domain.FitResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = *res
	return nil
}

// Load retrieves a result, or domain.ErrResultNotFound.
func (s *Store) Load(ctx context.Context, id string) (*domain.FitResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	out := res
	return &out, nil
}

// List returns all stored result IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.results))
	for id := range s.results {
		ids = append(ids, id)
	}
	return ids, nil
}

// Delete removes a result; missing IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
	return nil
}
