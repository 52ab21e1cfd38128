package store

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/pawlygon/shapekit/pkg/scene"
)

// MemoryStore keeps scenes in process memory. Entries are stored in their
// serialized form so callers never share mutable state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	scenes map[string][]byte
}

// NewMemoryStore creates an empty in-memory scene store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenes: make(map[string][]byte)}
}

// Get retrieves a scene by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*scene.Scene, error) {
	s.mu.RLock()
	data, ok := s.scenes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return scene.Read(bytes.NewReader(data))
}

// Put stores a scene under the given ID. The scene is validated first.
func (s *MemoryStore) Put(ctx context.Context, id string, sc *scene.Scene) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	data, err := scene.Marshal(sc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.scenes[id] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a scene.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.scenes, id)
	s.mu.Unlock()
	return nil
}

// List returns all stored scene IDs, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.scenes))
	for id := range s.scenes {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
