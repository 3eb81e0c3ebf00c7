// internal/sample/memory.go
package sample

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and DB-less dev bring-up.
type MemoryStore struct {
	mu      sync.RWMutex
	samples []Sample
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) List(ctx context.Context, tenantCode, menuID string) ([]Sample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Sample
	for i := len(m.samples) - 1; i >= 0; i-- {
		s := m.samples[i]
		if s.TenantCode == tenantCode && s.MenuID == menuID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) Create(ctx context.Context, s Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, s)
	return nil
}
