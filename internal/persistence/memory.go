package persistence

import (
	"context"
	"slices"
	"sync"
)

// MemoryAdapter is a process-local Adapter.
type MemoryAdapter struct {
	mu    sync.Mutex
	data  []byte
	saved bool
	saves int
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

func (m *MemoryAdapter) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, ErrNotFound
	}
	return slices.Clone(m.data), nil
}

func (m *MemoryAdapter) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	m.saved = true
	m.saves++
	return nil
}

func (m *MemoryAdapter) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.saved = false
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryAdapter) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
