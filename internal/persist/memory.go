package persist

import (
	"context"
	"sync"
)

// MemoryAdapter keeps snapshots in a map. It backs tests and ephemeral runs.
type MemoryAdapter struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves map[string]int
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		data:  make(map[string][]byte),
		saves: make(map[string]int),
	}
}

func (a *MemoryAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, ok := a.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (a *MemoryAdapter) Save(ctx context.Context, key string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	a.data[key] = stored
	a.saves[key]++
	return nil
}

// Saves reports how many snapshots were written for a key. Test helper.
func (a *MemoryAdapter) Saves(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves[key]
}
