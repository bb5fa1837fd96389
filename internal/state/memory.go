package state

import (
	"context"
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by MemoryStore writes while FailWrites is set.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStore keeps items in process memory. It backs ephemeral sessions and tests.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string

	failWrites bool
	failReads  bool
}

func NewMemory() *MemoryStore {
	return &MemoryStore{items: map[string]string{}}
}

// FailWrites makes every SetItem/RemoveItem fail until called with false.
func (m *MemoryStore) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// FailReads makes every GetItem fail until called with false.
func (m *MemoryStore) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

func (m *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return "", false, errors.New("storage unavailable")
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStore) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrQuotaExceeded
	}
	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrQuotaExceeded
	}
	delete(m.items, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
