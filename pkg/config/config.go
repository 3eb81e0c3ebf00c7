// pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Account policy
	LockoutThreshold       int
	PasswordExpirationDays int

	// Session lifecycle
	SessionIdleTTL     time.Duration
	SessionAbsoluteTTL time.Duration

	// Cookie / CSRF names exposed to the frontend
	SessionCookieName string
	CSRFCookieName    string
	CSRFHeaderName    string

	CORSOrigins []string

	// Optional YAML seed for dev bring-up (tenants, employees, menus, grants)
	SeedFile string

	// Redis & Postgres
	RedisURL    string
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:                    env("WORKGATE_ENV", "dev"),
		HTTPAddr:               env("WORKGATE_HTTP_ADDR", ":8080"),
		LockoutThreshold:       envInt("LOCKOUT_THRESHOLD", 5),
		PasswordExpirationDays: envInt("PASSWORD_EXPIRATION_DAYS", 90),
		SessionIdleTTL:         envDur("SESSION_IDLE_TTL_MIN", 30) * time.Minute,
		SessionAbsoluteTTL:     envDur("SESSION_ABSOLUTE_TTL_MIN", 480) * time.Minute,
		SessionCookieName:      env("SESSION_COOKIE_NAME", "WORKGATE_SESSION"),
		CSRFCookieName:         env("CSRF_COOKIE_NAME", "XSRF-TOKEN"),
		CSRFHeaderName:         env("CSRF_HEADER_NAME", "X-XSRF-TOKEN"),
		CORSOrigins:            envList("CORS_ORIGINS", "http://localhost:9000"),
		SeedFile:               env("SEED_FILE", ""),
		RedisURL:               env("REDIS_URL", ""),
		DatabaseURL:            env("DATABASE_URL", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Println("[WARN] DATABASE_URL not set — using in-memory stores for dev")
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envDur(k string, def int) time.Duration {
	return time.Duration(envInt(k, def))
}

func envList(k, def string) []string {
	raw := env(k, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
