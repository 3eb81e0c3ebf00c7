// internal/auth/errors.go
package auth

import "errors"

// Authentication failure taxonomy. Handlers translate these into the fixed
// failure envelope; everything unexpected collapses into ErrUnavailable so
// backend detail never reaches the client.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBadCredentials     = errors.New("bad credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrCredentialsExpired = errors.New("credentials expired")
	ErrUnavailable        = errors.New("authentication unavailable")
)
