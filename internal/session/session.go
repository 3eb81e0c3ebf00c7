// internal/session/session.go
package session

import (
	"context"
	"errors"
	"time"

	"workgate/internal/auth"
)

// ErrNotFound is returned for missing, expired, or invalidated sessions.
var ErrNotFound = errors.New("session not found")

// Session binds one session identifier to exactly one principal, plus the
// anti-forgery token bound to it.
type Session struct {
	ID        string          `json:"id"`
	Principal *auth.Principal `json:"principal"`
	CSRFToken string          `json:"csrfToken,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store is the server-side session state machine. Create enforces the
// at-most-one-live-session-per-identity invariant by invalidating any prior
// session for the principal's identity key before installing the new one,
// and always generates a fresh identifier (fixation mitigation).
type Store interface {
	Create(ctx context.Context, p *auth.Principal) (*Session, error)
	// Get returns the live session and refreshes its idle expiry.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// EnsureCSRF returns the token bound to the session, generating and
	// binding one first if absent. Idempotent.
	EnsureCSRF(ctx context.Context, id string) (string, error)
}
