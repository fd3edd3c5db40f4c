package store

import (
	"context"
	"maps"
	"sync"
)

var _ PersistentStore = (*memoryStore)(nil)

// memoryStore keeps entries in process memory. Used for the "memory" driver
// and in tests.
type memoryStore struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

// NewMemoryStore returns an empty in-memory [PersistentStore].
func NewMemoryStore() PersistentStore {
	return &memoryStore{items: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.items[key] = value
	return nil
}

func (m *memoryStore) SetMany(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	maps.Copy(m.items, entries)
	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	clear(m.items)
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
