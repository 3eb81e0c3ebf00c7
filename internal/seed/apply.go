// internal/seed/apply.go
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"workgate/internal/auth"
	"workgate/internal/menu"
	"workgate/pkg/tenants"
)

// hashOf resolves an employee's stored hash, hashing the plain password when
// no pre-hashed value is given.
func hashOf(e Employee, hasher auth.PasswordHasher) (string, error) {
	if e.PasswordHash != "" {
		return e.PasswordHash, nil
	}
	return hasher.Hash(e.Password)
}

// ApplyPostgres upserts the seed into the database. Idempotent: rerunning
// with the same file converges to the same rows.
func ApplyPostgres(ctx context.Context, dbPool *pgxpool.Pool, f *File, hasher auth.PasswordHasher, log *zap.SugaredLogger) error {
	for _, t := range f.Tenants {
		if _, err := dbPool.Exec(ctx, `
INSERT INTO tenants(tenant_code, name, active) VALUES ($1,$2,$3)
ON CONFLICT (tenant_code) DO UPDATE SET name=EXCLUDED.name, active=EXCLUDED.active`,
			t.Code, t.Name, t.IsActive()); err != nil {
			return fmt.Errorf("seed tenant %s: %w", t.Code, err)
		}
		for _, e := range t.Employees {
			hash, err := hashOf(e, hasher)
			if err != nil {
				return fmt.Errorf("hash password for %s/%s: %w", t.Code, e.UserID, err)
			}
			_, err = dbPool.Exec(ctx, `
INSERT INTO employees(tenant_code, user_id, name, dept_code, dept_name, email, password_hash, password_changed_at, retired)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (tenant_code, user_id) DO UPDATE SET
  name=EXCLUDED.name, dept_code=EXCLUDED.dept_code, dept_name=EXCLUDED.dept_name,
  email=EXCLUDED.email, password_hash=EXCLUDED.password_hash,
  password_changed_at=EXCLUDED.password_changed_at, retired=EXCLUDED.retired`,
				t.Code, e.UserID, e.Name, e.DeptCode, e.DeptName, e.Email, hash, e.PasswordChangedAt, e.Retired)
			if err != nil {
				return fmt.Errorf("seed employee %s/%s: %w", t.Code, e.UserID, err)
			}
			for _, a := range e.Authorities {
				if _, err := dbPool.Exec(ctx, `
INSERT INTO authority_grants(tenant_code, user_id, authority)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, t.Code, e.UserID, a); err != nil {
					return fmt.Errorf("seed authority %s: %w", a, err)
				}
			}
		}
		for _, m := range t.Menus {
			if _, err := dbPool.Exec(ctx, `
INSERT INTO menus(tenant_code, menu_id, name, parent_menu_id, menu_level, menu_order, icon, active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (tenant_code, menu_id) DO UPDATE SET
  name=EXCLUDED.name, parent_menu_id=EXCLUDED.parent_menu_id, menu_level=EXCLUDED.menu_level,
  menu_order=EXCLUDED.menu_order, icon=EXCLUDED.icon, active=EXCLUDED.active`,
				t.Code, m.MenuID, m.Name, m.ParentMenuID, m.Level, m.Order, m.Icon, m.IsActive()); err != nil {
				return fmt.Errorf("seed menu %s: %w", m.MenuID, err)
			}
		}
		for _, g := range t.Grants {
			for _, id := range g.Menus {
				if _, err := dbPool.Exec(ctx, `
INSERT INTO menu_grants(tenant_code, authority, menu_id)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, t.Code, g.Authority, id); err != nil {
					return fmt.Errorf("seed menu grant %s->%s: %w", g.Authority, id, err)
				}
			}
		}
		log.Infow("tenant seeded", "tenant", t.Code, "employees", len(t.Employees), "menus", len(t.Menus))
	}
	return nil
}

// ApplyMemory loads the seed into the in-memory stores for DB-less dev.
func ApplyMemory(f *File, registry *tenants.MemoryRegistry, credentials *auth.MemoryStore, menus *menu.MemoryStore, hasher auth.PasswordHasher, log *zap.SugaredLogger) error {
	for _, t := range f.Tenants {
		registry.Add(tenants.Tenant{Code: t.Code, Name: t.Name, Active: t.IsActive()})
		for _, e := range t.Employees {
			hash, err := hashOf(e, hasher)
			if err != nil {
				return fmt.Errorf("hash password for %s/%s: %w", t.Code, e.UserID, err)
			}
			credentials.AddCredential(auth.Credential{
				TenantCode:        t.Code,
				UserID:            e.UserID,
				Name:              e.Name,
				DeptCode:          e.DeptCode,
				DeptName:          e.DeptName,
				Email:             e.Email,
				PasswordHash:      hash,
				PasswordChangedAt: e.PasswordChangedAt,
				Retired:           e.Retired,
			})
			for _, a := range e.Authorities {
				credentials.GrantAuthority(t.Code, e.UserID, a)
			}
		}
		for _, m := range t.Menus {
			menus.AddMenu(t.Code, menu.Node{
				MenuID:   m.MenuID,
				Name:     m.Name,
				ParentID: m.ParentMenuID,
				Level:    m.Level,
				Order:    m.Order,
				Icon:     m.Icon,
				Active:   m.IsActive(),
			})
		}
		for _, g := range t.Grants {
			for _, id := range g.Menus {
				credentials.GrantMenu(t.Code, g.Authority, id)
				menus.GrantMenu(t.Code, g.Authority, id)
			}
		}
		log.Infow("tenant seeded (memory)", "tenant", t.Code, "employees", len(t.Employees), "menus", len(t.Menus))
	}
	return nil
}
