// internal/auth/context.go
package auth

import "context"

type identityKey struct{}

// WithIdentity binds the authenticated identity to the request context.
// The value is deliberately untyped: downstream checks distinguish "no
// identity" from "identity of an unexpected shape" (a wiring defect).
func WithIdentity(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, identityKey{}, v)
}

// IdentityFrom returns whatever identity value is bound, or nil.
func IdentityFrom(ctx context.Context) any {
	return ctx.Value(identityKey{})
}

// PrincipalFrom returns the bound Principal, if one of the expected shape
// is present.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := IdentityFrom(ctx).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
