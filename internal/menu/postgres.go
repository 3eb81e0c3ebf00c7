// internal/menu/postgres.go
package menu

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type pgStore struct {
	dbPool *pgxpool.Pool
	log    *zap.SugaredLogger
}

func NewPostgresStore(dbPool *pgxpool.Pool, log *zap.SugaredLogger) Store {
	return &pgStore{dbPool: dbPool, log: log}
}

// EnsureSchema creates the menu table if missing. Safe to call repeatedly.
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS menus (
  tenant_code text NOT NULL,
  menu_id text NOT NULL,
  name text NOT NULL DEFAULT '',
  parent_menu_id text NOT NULL DEFAULT '',
  menu_level int NOT NULL DEFAULT 1,
  menu_order int NOT NULL DEFAULT 0,
  icon text NOT NULL DEFAULT '',
  active boolean NOT NULL DEFAULT true,
  PRIMARY KEY (tenant_code, menu_id)
);
`)
	return err
}

func (s *pgStore) FindAccessibleMenus(ctx context.Context, tenantCode string, authorities []string) ([]*Node, error) {
	if len(authorities) == 0 {
		return nil, nil
	}
	rows, err := s.dbPool.Query(ctx, `
SELECT DISTINCT m.menu_id, m.name, m.parent_menu_id, m.menu_level, m.menu_order, m.icon, m.active
  FROM menus m
  JOIN menu_grants g ON g.tenant_code = m.tenant_code AND g.menu_id = m.menu_id
 WHERE m.tenant_code = $1 AND m.active AND g.authority = ANY($2)
 ORDER BY m.menu_level, m.menu_order, m.menu_id`, tenantCode, authorities)
	if err != nil {
		return nil, fmt.Errorf("query accessible menus: %w", err)
	}
	defer rows.Close()
	var out []*Node
	for rows.Next() {
		var n Node
		if err := rows.Scan(&n.MenuID, &n.Name, &n.ParentID, &n.Level, &n.Order, &n.Icon, &n.Active); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
