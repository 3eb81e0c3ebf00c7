// internal/menu/memory.go
package menu

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and DB-less dev bring-up.
type MemoryStore struct {
	mu     sync.RWMutex
	nodes  map[string][]*Node          // tenant -> all menus
	grants map[string]map[string]bool  // tenant:authority -> menuID set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:  map[string][]*Node{},
		grants: map[string]map[string]bool{},
	}
}

// AddMenu registers a menu row for the tenant.
func (m *MemoryStore) AddMenu(tenantCode string, n Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := n
	m.nodes[tenantCode] = append(m.nodes[tenantCode], &cp)
}

// GrantMenu makes menuID visible to holders of the authority.
func (m *MemoryStore) GrantMenu(tenantCode, authority, menuID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := tenantCode + ":" + authority
	if m.grants[k] == nil {
		m.grants[k] = map[string]bool{}
	}
	m.grants[k][menuID] = true
}

func (m *MemoryStore) FindAccessibleMenus(ctx context.Context, tenantCode string, authorities []string) ([]*Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	visible := map[string]bool{}
	for _, a := range authorities {
		for id := range m.grants[tenantCode+":"+a] {
			visible[id] = true
		}
	}
	var out []*Node
	for _, n := range m.nodes[tenantCode] {
		if n.Active && visible[n.MenuID] {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].MenuID < out[j].MenuID
	})
	return out, nil
}
