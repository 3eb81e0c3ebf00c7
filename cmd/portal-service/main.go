// cmd/portal-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workgate/internal/auth"
	"workgate/internal/menu"
	"workgate/internal/portal"
	"workgate/internal/sample"
	"workgate/internal/seed"
	"workgate/internal/session"
	"workgate/pkg/config"
	"workgate/pkg/db"
	"workgate/pkg/logger"
	"workgate/pkg/middleware"
	"workgate/pkg/tenants"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	pool := db.MustConnect(cfg, log)
	rdb := db.MustRedis(cfg, log)

	hasher := auth.NewBcryptHasher()

	var seedFile *seed.File
	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatalw("seed load", "file", cfg.SeedFile, "err", err)
		}
		seedFile = f
	}

	var registry tenants.Registry
	var credStore auth.Store
	var menuStore menu.Store
	var sampleStore sample.Store
	if pool != nil {
		ctx := context.Background()
		if err := tenants.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("tenants schema", "err", err)
		}
		if err := auth.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("auth schema", "err", err)
		}
		if err := menu.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("menu schema", "err", err)
		}
		if err := sample.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("sample schema", "err", err)
		}
		if seedFile != nil {
			if err := seed.ApplyPostgres(ctx, pool, seedFile, hasher, log); err != nil {
				log.Warnw("seed", "err", err)
			}
		}
		registry = tenants.NewPostgresRegistry(pool, log)
		credStore = auth.NewPostgresStore(pool, log)
		menuStore = menu.NewPostgresStore(pool, log)
		sampleStore = sample.NewPostgresStore(pool)
	} else {
		regMem := tenants.NewMemoryRegistry()
		credMem := auth.NewMemoryStore()
		menuMem := menu.NewMemoryStore()
		if seedFile != nil {
			if err := seed.ApplyMemory(seedFile, regMem, credMem, menuMem, hasher, log); err != nil {
				log.Fatalw("seed", "err", err)
			}
		}
		registry = regMem
		credStore = credMem
		menuStore = menuMem
		sampleStore = sample.NewMemoryStore()
	}

	var sessStore session.Store
	if rdb != nil {
		sessStore = session.NewRedisStore(rdb, cfg.SessionIdleTTL, cfg.SessionAbsoluteTTL, log)
	} else {
		log.Warnw("REDIS_URL not set — sessions held in process memory")
		sessStore = session.NewMemoryStore(cfg.SessionIdleTTL, cfg.SessionAbsoluteTTL)
	}

	authn := auth.NewAuthenticator(credStore, hasher, cfg.LockoutThreshold, cfg.PasswordExpirationDays, log)
	menuSvc := menu.NewService(menuStore, log)
	app := portal.NewApp(cfg, registry, authn, sessStore, menuSvc, log)
	samples := sample.NewHandler(sampleStore, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Tracing())
	r.Use(app.SessionAuth)
	r.Use(app.RequireAuth)
	r.Use(app.CSRFProtect)
	r.Use(app.MenuFilter)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/api/user/login", app.Login)
	r.Post("/api/user/logout", app.Logout)
	r.Get("/api/user/csrf", app.CSRF)
	r.Get("/api/user/me", app.Me)
	r.Get("/api/menus", app.Menus)
	samples.Mount(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Infow("portal-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("ListenAndServe", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	fmt.Println("portal-service stopped")
}
