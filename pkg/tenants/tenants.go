// pkg/tenants/tenants.go
package tenants

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no tenant exists under the requested code.
var ErrNotFound = errors.New("tenant not found")

// Tenant represents a logical customer / account space. Every employee,
// menu, and session is scoped to exactly one tenant by code.
type Tenant struct {
	Code   string `json:"tenantCode"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Registry resolves tenant codes submitted at login.
type Registry interface {
	Find(ctx context.Context, code string) (Tenant, error)
}
