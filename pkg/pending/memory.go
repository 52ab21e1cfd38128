package pending

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process report store for tests and single-shot use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory store with the default TTL.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]*Report),
		ttl:     DefaultTTL,
	}
}

// Get retrieves the report for a target key.
func (s *MemoryStore) Get(ctx context.Context, key string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[key]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Since(r.CreatedAt) > s.ttl {
		return nil, ErrNotFound
	}
	return r, nil
}

// Set stores a report under its target key.
func (s *MemoryStore) Set(ctx context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Key()] = r
	return nil
}

// Clear removes the report for a target key.
func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, key)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
