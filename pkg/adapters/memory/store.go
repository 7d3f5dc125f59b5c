package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tper/pkg/domain"
)

type entry struct {
	keys   []string
	values map[string]string
}

// Store implements ports.Scratchpad in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*entry
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*entry),
	}
}

// Put writes an artifact for the workflow.
func (s *Store) Put(ctx context.Context, workflowID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[workflowID]
	if !ok {
		e = &entry{values: make(map[string]string)}
		s.data[workflowID] = e
	}
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
	return nil
}

// Get retrieves an artifact.
func (s *Store) Get(ctx context.Context, workflowID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[workflowID]
	if !ok {
		return "", domain.ErrArtifactNotFound
	}
	value, ok := e.values[key]
	if !ok {
		return "", domain.ErrArtifactNotFound
	}
	return value, nil
}

// List returns the keys of a workflow in first-write order.
func (s *Store) List(ctx context.Context, workflowID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[workflowID]
	if !ok {
		return []string{}, nil
	}
	// Copy so the caller can't mutate the store's slice
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys, nil
}

// Purge removes all artifacts of the workflow.
func (s *Store) Purge(ctx context.Context, workflowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, workflowID)
	return nil
}

// Len returns the number of workflows currently holding artifacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
