package memory

import (
	"context"
	"sync"
)

// Store implements storage.Store on an in-process map. It is the fallback
// when no persistent backend is configured or reachable, and doubles as the
// storage used in tests. Data does not survive a restart.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty in-memory key-value store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// Read returns the value for key, or ok=false when absent.
func (s *Store) Read(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// Write stores value under key.
func (s *Store) Write(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Remove deletes key.
func (s *Store) Remove(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
