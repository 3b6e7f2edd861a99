package profile

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory profile store for tests and development.
// It implements both Source and Cache.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]string
}

// NewMemoryStore creates an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]string)}
}

// FetchProfile implements Source.
func (m *MemoryStore) FetchProfile(ctx context.Context, candidateID string) (string, error) {
	return m.Get(ctx, candidateID)
}

// Get implements Cache.
func (m *MemoryStore) Get(_ context.Context, candidateID string) (string, error) {
	if candidateID == "" {
		return "", ErrInvalidID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.profiles[candidateID]
	if !ok {
		return "", ErrNotFound
	}
	return text, nil
}

// Put implements Cache.
func (m *MemoryStore) Put(_ context.Context, candidateID, text string) error {
	if candidateID == "" {
		return ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[candidateID] = text
	return nil
}
