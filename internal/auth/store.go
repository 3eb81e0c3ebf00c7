// internal/auth/store.go
package auth

import "context"

// Credential is one tenant-scoped employee credential row. The password
// change date is stored as YYYYMMDD; an empty or malformed value means the
// age policy does not apply.
type Credential struct {
	TenantCode string
	UserID     string
	Name       string
	DeptCode   string
	DeptName   string
	Email      string

	PasswordHash      string
	FailureCount      int
	PasswordChangedAt string
	Retired           bool
}

// Store persists credentials and role/menu grants. The Authenticator
// consumes it but never owns row lifecycle.
//
// FindCredential returns ErrUserNotFound when no row matches the
// (tenantCode, userID) identity key.
type Store interface {
	FindCredential(ctx context.Context, tenantCode, userID string) (*Credential, error)
	IncrementFailureCount(ctx context.Context, tenantCode, userID string) error
	ResetFailureCount(ctx context.Context, tenantCode, userID string) error
	FindAuthorities(ctx context.Context, tenantCode, userID string) ([]string, error)
	FindAccessibleMenuIDs(ctx context.Context, tenantCode string, authorities []string) ([]string, error)
}
