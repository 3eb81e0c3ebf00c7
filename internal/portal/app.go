// internal/portal/app.go
package portal

import (
	"go.uber.org/zap"

	"workgate/internal/auth"
	"workgate/internal/menu"
	"workgate/internal/session"
	"workgate/pkg/config"
	"workgate/pkg/tenants"
)

// App is the portal application container: shared deps and config only,
// request-scoped state travels in context.
type App struct {
	log      *zap.SugaredLogger
	cfg      config.Config
	tenants  tenants.Registry
	authn    *auth.Authenticator
	sessions session.Store
	menus    *menu.Service
}

func NewApp(cfg config.Config, reg tenants.Registry, authn *auth.Authenticator, sessions session.Store, menus *menu.Service, log *zap.SugaredLogger) *App {
	return &App{log: log, cfg: cfg, tenants: reg, authn: authn, sessions: sessions, menus: menus}
}
