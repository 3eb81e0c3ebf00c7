// internal/auth/memory.go
package auth

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and DB-less dev bring-up.
// The mutex makes the failure-counter read-modify-write safe under
// concurrent login attempts.
type MemoryStore struct {
	mu          sync.Mutex
	credentials map[string]*Credential // key tenant:user
	authorities map[string][]string    // key tenant:user
	menuGrants  map[string][]string    // key tenant:authority
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		credentials: map[string]*Credential{},
		authorities: map[string][]string{},
		menuGrants:  map[string][]string{},
	}
}

func identKey(tenantCode, userID string) string { return tenantCode + ":" + userID }

// AddCredential installs or replaces a credential row.
func (m *MemoryStore) AddCredential(c Credential) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := c
	m.credentials[identKey(c.TenantCode, c.UserID)] = &cp
}

// GrantAuthority grants an authority string to an identity.
func (m *MemoryStore) GrantAuthority(tenantCode, userID, authority string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := identKey(tenantCode, userID)
	m.authorities[k] = append(m.authorities[k], authority)
}

// GrantMenu makes menuID visible to holders of the authority.
func (m *MemoryStore) GrantMenu(tenantCode, authority, menuID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := identKey(tenantCode, authority)
	m.menuGrants[k] = append(m.menuGrants[k], menuID)
}

// FailureCount returns the stored counter, for tests.
func (m *MemoryStore) FailureCount(tenantCode, userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.credentials[identKey(tenantCode, userID)]; ok {
		return c.FailureCount
	}
	return 0
}

func (m *MemoryStore) FindCredential(ctx context.Context, tenantCode, userID string) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.credentials[identKey(tenantCode, userID)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStore) IncrementFailureCount(ctx context.Context, tenantCode, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.credentials[identKey(tenantCode, userID)]; ok {
		c.FailureCount++
	}
	return nil
}

func (m *MemoryStore) ResetFailureCount(ctx context.Context, tenantCode, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.credentials[identKey(tenantCode, userID)]; ok {
		c.FailureCount = 0
	}
	return nil
}

func (m *MemoryStore) FindAuthorities(ctx context.Context, tenantCode, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]string(nil), m.authorities[identKey(tenantCode, userID)]...)
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) FindAccessibleMenuIDs(ctx context.Context, tenantCode string, authorities []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, a := range authorities {
		for _, id := range m.menuGrants[identKey(tenantCode, a)] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
