package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryBackend keeps slots in process memory. Used by tests and by the
// default development configuration.
type MemoryBackend struct {
	mu     sync.RWMutex
	slots  map[string]map[string][]byte // key -> owner -> value
	closed bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) Get(ctx context.Context, owner, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.slots[key][owner]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Put(ctx context.Context, owner, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	byOwner, ok := m.slots[key]
	if !ok {
		byOwner = make(map[string][]byte)
		m.slots[key] = byOwner
	}
	byOwner[owner] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, owner, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.slots[key], owner)
	return nil
}

func (m *MemoryBackend) Owners(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	owners := make([]string, 0, len(m.slots[key]))
	for owner := range m.slots[key] {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners, nil
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
