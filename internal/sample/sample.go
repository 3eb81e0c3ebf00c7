// internal/sample/sample.go
package sample

import (
	"context"
	"time"
)

// Sample is a minimal menu-scoped business record. The package exists as a
// collaborator behind the menu authorization filter; it carries no policy of
// its own.
type Sample struct {
	ID         string    `json:"id"`
	TenantCode string    `json:"tenantCode"`
	MenuID     string    `json:"menuId"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Store interface {
	List(ctx context.Context, tenantCode, menuID string) ([]Sample, error)
	Create(ctx context.Context, s Sample) error
}
