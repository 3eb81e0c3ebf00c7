// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"workgate/internal/auth"
)

// MemoryStore is an in-memory Store for tests and DB-less dev bring-up.
// Expiry is checked lazily on access.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*memSession
	byIdentity  map[string]string
	idleTTL     time.Duration
	absoluteTTL time.Duration
	now         func() time.Time
}

type memSession struct {
	sess     Session
	lastSeen time.Time
}

func NewMemoryStore(idleTTL, absoluteTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    map[string]*memSession{},
		byIdentity:  map[string]string{},
		idleTTL:     idleTTL,
		absoluteTTL: absoluteTTL,
		now:         time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (m *MemoryStore) SetClock(now func() time.Time) { m.now = now }

func (m *MemoryStore) Create(ctx context.Context, p *auth.Principal) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident := p.IdentityKey()
	if old, ok := m.byIdentity[ident]; ok {
		delete(m.sessions, old)
	}
	now := m.now().UTC()
	sess := Session{ID: uuid.NewString(), Principal: p, CreatedAt: now}
	m.sessions[sess.ID] = &memSession{sess: sess, lastSeen: now}
	m.byIdentity[ident] = sess.ID
	return &sess, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, err := m.liveLocked(id)
	if err != nil {
		return nil, err
	}
	ms.lastSeen = m.now().UTC()
	cp := ms.sess
	return &cp, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ms, ok := m.sessions[id]; ok {
		ident := ms.sess.Principal.IdentityKey()
		if m.byIdentity[ident] == id {
			delete(m.byIdentity, ident)
		}
		delete(m.sessions, id)
	}
	return nil
}

func (m *MemoryStore) EnsureCSRF(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, err := m.liveLocked(id)
	if err != nil {
		return "", err
	}
	if ms.sess.CSRFToken == "" {
		ms.sess.CSRFToken = uuid.NewString()
	}
	return ms.sess.CSRFToken, nil
}

func (m *MemoryStore) liveLocked(id string) (*memSession, error) {
	ms, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now().UTC()
	if now.Sub(ms.lastSeen) > m.idleTTL || now.Sub(ms.sess.CreatedAt) > m.absoluteTTL {
		ident := ms.sess.Principal.IdentityKey()
		if m.byIdentity[ident] == id {
			delete(m.byIdentity, ident)
		}
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	return ms, nil
}
