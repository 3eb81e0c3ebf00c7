// pkg/tenants/memory.go
package tenants

import (
	"context"
	"sync"
)

// MemoryRegistry is an in-memory Registry for tests and DB-less dev.
type MemoryRegistry struct {
	mu     sync.RWMutex
	byCode map[string]Tenant
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{byCode: map[string]Tenant{}}
}

// Add registers (or replaces) a tenant.
func (m *MemoryRegistry) Add(t Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCode[t.Code] = t
}

func (m *MemoryRegistry) Find(ctx context.Context, code string) (Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.byCode[code]; ok {
		return t, nil
	}
	return Tenant{}, ErrNotFound
}
