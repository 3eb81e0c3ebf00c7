// internal/sample/postgres.go
package sample

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pgStore struct {
	dbPool *pgxpool.Pool
}

func NewPostgresStore(dbPool *pgxpool.Pool) Store {
	return &pgStore{dbPool: dbPool}
}

// EnsureSchema creates the sample table if missing. Safe to call repeatedly.
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS samples (
  id uuid PRIMARY KEY,
  tenant_code text NOT NULL,
  menu_id text NOT NULL,
  title text NOT NULL,
  content text NOT NULL DEFAULT '',
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS samples_tenant_menu_idx ON samples(tenant_code, menu_id);
`)
	return err
}

func (s *pgStore) List(ctx context.Context, tenantCode, menuID string) ([]Sample, error) {
	rows, err := s.dbPool.Query(ctx, `
SELECT id, tenant_code, menu_id, title, content, created_at
  FROM samples WHERE tenant_code=$1 AND menu_id=$2 ORDER BY created_at DESC`, tenantCode, menuID)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()
	var out []Sample
	for rows.Next() {
		var sm Sample
		if err := rows.Scan(&sm.ID, &sm.TenantCode, &sm.MenuID, &sm.Title, &sm.Content, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *pgStore) Create(ctx context.Context, sm Sample) error {
	_, err := s.dbPool.Exec(ctx, `
INSERT INTO samples(id, tenant_code, menu_id, title, content, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`, sm.ID, sm.TenantCode, sm.MenuID, sm.Title, sm.Content, sm.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}
