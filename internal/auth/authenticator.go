// internal/auth/authenticator.go
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Authenticator validates a (tenantCode, userID, password) triple against the
// credential store and applies the lockout and password-aging policy.
type Authenticator struct {
	store  Store
	hasher PasswordHasher
	log    *zap.SugaredLogger

	lockoutThreshold       int
	passwordExpirationDays int

	now func() time.Time
}

func NewAuthenticator(store Store, hasher PasswordHasher, lockoutThreshold, passwordExpirationDays int, log *zap.SugaredLogger) *Authenticator {
	return &Authenticator{
		store:                  store,
		hasher:                 hasher,
		log:                    log,
		lockoutThreshold:       lockoutThreshold,
		passwordExpirationDays: passwordExpirationDays,
		now:                    time.Now,
	}
}

// Authenticate runs the full credential check and returns the authorized
// principal. Failures are one of the sentinel errors in errors.go; the only
// state mutation on a failed attempt is the failure-counter increment.
func (a *Authenticator) Authenticate(ctx context.Context, tenantCode, userID, password string) (*Principal, error) {
	tenantCode = strings.TrimSpace(tenantCode)
	userID = strings.TrimSpace(userID)

	cred, err := a.store.FindCredential(ctx, tenantCode, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			a.log.Warnw("authentication failed: user not found", "tenant", tenantCode, "user", userID)
			return nil, ErrUserNotFound
		}
		a.log.Errorw("credential lookup failed", "tenant", tenantCode, "user", userID, "err", err)
		return nil, ErrUnavailable
	}

	if !a.hasher.Verify(cred.PasswordHash, password) {
		a.log.Warnw("authentication failed: bad credentials", "tenant", tenantCode, "user", userID)
		if err := a.store.IncrementFailureCount(ctx, tenantCode, userID); err != nil {
			// Under-counting here is an accepted relaxation; the attempt
			// still fails.
			a.log.Errorw("failure count increment failed", "tenant", tenantCode, "user", userID, "err", err)
		}
		return nil, ErrBadCredentials
	}

	enabled := !cred.Retired
	locked := cred.FailureCount >= a.lockoutThreshold
	expired := a.credentialsExpired(cred.PasswordChangedAt)

	switch {
	case !enabled:
		a.log.Warnw("authentication failed: account disabled", "tenant", tenantCode, "user", userID)
		return nil, ErrAccountDisabled
	case locked:
		a.log.Warnw("authentication failed: account locked", "tenant", tenantCode, "user", userID, "failures", cred.FailureCount)
		return nil, ErrAccountLocked
	case expired:
		a.log.Warnw("authentication failed: credentials expired", "tenant", tenantCode, "user", userID)
		return nil, ErrCredentialsExpired
	}

	authorities, err := a.store.FindAuthorities(ctx, tenantCode, userID)
	if err != nil {
		a.log.Errorw("authority lookup failed", "tenant", tenantCode, "user", userID, "err", err)
		return nil, ErrUnavailable
	}
	menuIDs, err := a.store.FindAccessibleMenuIDs(ctx, tenantCode, authorities)
	if err != nil {
		a.log.Errorw("accessible menu lookup failed", "tenant", tenantCode, "user", userID, "err", err)
		return nil, ErrUnavailable
	}

	// All status checks passed: clear the failure counter explicitly.
	if err := a.store.ResetFailureCount(ctx, tenantCode, userID); err != nil {
		a.log.Warnw("failure count reset failed", "tenant", tenantCode, "user", userID, "err", err)
	}

	p := &Principal{
		TenantCode:         cred.TenantCode,
		UserID:             cred.UserID,
		Name:               cred.Name,
		DeptCode:           cred.DeptCode,
		DeptName:           cred.DeptName,
		Email:              cred.Email,
		Authorities:        authorities,
		AccessibleMenuIDs:  menuIDs,
		Enabled:            true,
		AccountLocked:      false,
		CredentialsExpired: false,
	}
	a.log.Infow("authentication successful", "tenant", tenantCode, "user", userID, "authorities", len(authorities), "menus", len(menuIDs))
	return p, nil
}

// credentialsExpired applies the password-aging policy. A change date exactly
// passwordExpirationDays ago is still valid; missing or malformed dates are
// treated as not expired.
func (a *Authenticator) credentialsExpired(changedAt string) bool {
	if len(changedAt) != 8 {
		return false
	}
	changed, err := time.Parse("20060102", changedAt)
	if err != nil {
		a.log.Warnw("unparsable password change date, treating as not expired", "value", changedAt)
		return false
	}
	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -a.passwordExpirationDays)
	return changed.Before(cutoff)
}
