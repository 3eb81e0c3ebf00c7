// pkg/tenants/postgres.go
package tenants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pgRegistry implements Registry backed by PostgreSQL.
type pgRegistry struct {
	dbPool *pgxpool.Pool
	log    *zap.SugaredLogger
}

// NewPostgresRegistry constructs a PostgreSQL-backed tenant registry.
func NewPostgresRegistry(dbPool *pgxpool.Pool, log *zap.SugaredLogger) Registry {
	return &pgRegistry{dbPool: dbPool, log: log}
}

// EnsureSchema creates the tenants table if it does not already exist.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tenants (
  tenant_code text PRIMARY KEY,
  name text NOT NULL DEFAULT '',
  active boolean NOT NULL DEFAULT true
);`)
	return err
}

func (p *pgRegistry) Find(ctx context.Context, code string) (Tenant, error) {
	row := p.dbPool.QueryRow(ctx,
		`SELECT tenant_code, name, active FROM tenants WHERE tenant_code=$1`, code)
	var t Tenant
	if err := row.Scan(&t.Code, &t.Name, &t.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrNotFound
		}
		p.log.Errorw("tenant lookup failed", "tenant", code, "err", err)
		return Tenant{}, err
	}
	return t, nil
}
