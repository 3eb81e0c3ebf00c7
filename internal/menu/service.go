// internal/menu/service.go
package menu

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"workgate/internal/auth"
)

// Service assembles the menu tree for an authenticated principal.
type Service struct {
	store Store
	log   *zap.SugaredLogger
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// UserMenus returns the caller's accessible menus as a forest. The flat list
// comes back from the store already filtered by authority and sorted.
func (s *Service) UserMenus(ctx context.Context, p *auth.Principal) ([]*Node, error) {
	flat, err := s.store.FindAccessibleMenus(ctx, p.TenantCode, p.Authorities)
	if err != nil {
		return nil, fmt.Errorf("find accessible menus: %w", err)
	}
	s.log.Debugw("assembling menu tree", "tenant", p.TenantCode, "user", p.UserID, "menus", len(flat))
	return BuildTree(flat, s.log), nil
}
