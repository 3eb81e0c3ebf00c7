// internal/auth/postgres.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pgStore implements Store backed by PostgreSQL.
type pgStore struct {
	dbPool *pgxpool.Pool
	log    *zap.SugaredLogger
}

// NewPostgresStore constructs a PostgreSQL-backed credential store.
func NewPostgresStore(dbPool *pgxpool.Pool, log *zap.SugaredLogger) Store {
	return &pgStore{dbPool: dbPool, log: log}
}

// EnsureSchema creates the credential and grant tables if missing.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS employees (
  tenant_code text NOT NULL,
  user_id text NOT NULL,
  name text NOT NULL DEFAULT '',
  dept_code text NOT NULL DEFAULT '',
  dept_name text NOT NULL DEFAULT '',
  email text NOT NULL DEFAULT '',
  password_hash text NOT NULL,
  failure_count int NOT NULL DEFAULT 0,
  password_changed_at text NOT NULL DEFAULT '',
  retired boolean NOT NULL DEFAULT false,
  PRIMARY KEY (tenant_code, user_id)
);
CREATE TABLE IF NOT EXISTS authority_grants (
  tenant_code text NOT NULL,
  user_id text NOT NULL,
  authority text NOT NULL,
  PRIMARY KEY (tenant_code, user_id, authority)
);
CREATE TABLE IF NOT EXISTS menu_grants (
  tenant_code text NOT NULL,
  authority text NOT NULL,
  menu_id text NOT NULL,
  PRIMARY KEY (tenant_code, authority, menu_id)
);
`)
	return err
}

func (s *pgStore) FindCredential(ctx context.Context, tenantCode, userID string) (*Credential, error) {
	row := s.dbPool.QueryRow(ctx, `
SELECT tenant_code, user_id, name, dept_code, dept_name, email,
       password_hash, failure_count, password_changed_at, retired
  FROM employees WHERE tenant_code=$1 AND user_id=$2`, tenantCode, userID)
	var c Credential
	err := row.Scan(&c.TenantCode, &c.UserID, &c.Name, &c.DeptCode, &c.DeptName, &c.Email,
		&c.PasswordHash, &c.FailureCount, &c.PasswordChangedAt, &c.Retired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &c, nil
}

func (s *pgStore) IncrementFailureCount(ctx context.Context, tenantCode, userID string) error {
	_, err := s.dbPool.Exec(ctx,
		`UPDATE employees SET failure_count = failure_count + 1 WHERE tenant_code=$1 AND user_id=$2`,
		tenantCode, userID)
	if err != nil {
		return fmt.Errorf("increment failure count: %w", err)
	}
	return nil
}

func (s *pgStore) ResetFailureCount(ctx context.Context, tenantCode, userID string) error {
	_, err := s.dbPool.Exec(ctx,
		`UPDATE employees SET failure_count = 0 WHERE tenant_code=$1 AND user_id=$2`,
		tenantCode, userID)
	if err != nil {
		return fmt.Errorf("reset failure count: %w", err)
	}
	return nil
}

func (s *pgStore) FindAuthorities(ctx context.Context, tenantCode, userID string) ([]string, error) {
	rows, err := s.dbPool.Query(ctx,
		`SELECT authority FROM authority_grants WHERE tenant_code=$1 AND user_id=$2 ORDER BY authority`,
		tenantCode, userID)
	if err != nil {
		return nil, fmt.Errorf("find authorities: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan authority: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *pgStore) FindAccessibleMenuIDs(ctx context.Context, tenantCode string, authorities []string) ([]string, error) {
	if len(authorities) == 0 {
		return nil, nil
	}
	rows, err := s.dbPool.Query(ctx,
		`SELECT DISTINCT menu_id FROM menu_grants WHERE tenant_code=$1 AND authority = ANY($2) ORDER BY menu_id`,
		tenantCode, authorities)
	if err != nil {
		return nil, fmt.Errorf("find accessible menus: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan menu id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
