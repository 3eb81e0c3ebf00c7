// internal/auth/principal.go
package auth

// Principal is the authenticated identity snapshot built once per successful
// login and held for the lifetime of the session. It is immutable after
// construction; the accessible menu set is not recomputed per request.
type Principal struct {
	TenantCode string `json:"tenantCode"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	DeptCode   string `json:"deptCode,omitempty"`
	DeptName   string `json:"deptName,omitempty"`
	Email      string `json:"email,omitempty"`

	Authorities       []string `json:"authorities"`
	AccessibleMenuIDs []string `json:"accessibleMenuIds"`

	Enabled            bool `json:"enabled"`
	AccountLocked      bool `json:"accountLocked"`
	CredentialsExpired bool `json:"credentialsExpired"`
}

// IdentityKey returns the tenant-scoped identity key.
func (p *Principal) IdentityKey() string {
	return p.TenantCode + ":" + p.UserID
}

// CanAccess reports whether menuID is in the principal's accessible menu set.
func (p *Principal) CanAccess(menuID string) bool {
	for _, id := range p.AccessibleMenuIDs {
		if id == menuID {
			return true
		}
	}
	return false
}

// HasAuthority reports whether the principal holds the given authority string.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
