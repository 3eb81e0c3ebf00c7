// internal/portal/handlers.go
package portal

import (
	"errors"
	"net/http"

	"workgate/internal/auth"
	"workgate/pkg/response"
	"workgate/pkg/tenants"
)

// Login authenticates the submitted (tenantCode, userId, password) triple and
// installs a fresh session. Failure bodies carry one of the fixed codes; the
// HTTP status is always 401 on failure.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.WriteFail(w, http.StatusBadRequest, "INVALID_INPUT", "Malformed login request.")
		return
	}
	tenantCode := r.PostFormValue("tenantCode")
	userID := r.PostFormValue("userId")
	password := r.PostFormValue("password")

	// An unknown or deactivated tenant is indistinguishable from bad
	// credentials at the wire.
	tenant, err := a.tenants.Find(r.Context(), tenantCode)
	if err != nil || !tenant.Active {
		if err != nil && !errors.Is(err, tenants.ErrNotFound) {
			a.log.Errorw("tenant lookup failed", "tenant", tenantCode, "err", err)
		} else {
			a.log.Warnw("login rejected: unknown or inactive tenant", "tenant", tenantCode)
		}
		loginAttempts.WithLabelValues("LOGIN_FAILED").Inc()
		response.WriteFail(w, http.StatusUnauthorized, "LOGIN_FAILED", "Invalid username or password.")
		return
	}

	p, err := a.authn.Authenticate(r.Context(), tenantCode, userID, password)
	if err != nil {
		code, message := loginFailure(err)
		loginAttempts.WithLabelValues(code).Inc()
		response.WriteFail(w, http.StatusUnauthorized, code, message)
		return
	}

	sess, err := a.sessions.Create(r.Context(), p)
	if err != nil {
		a.log.Errorw("session create failed", "tenant", p.TenantCode, "user", p.UserID, "err", err)
		loginAttempts.WithLabelValues("SESSION_ERROR").Inc()
		response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login could not be completed.")
		return
	}
	loginAttempts.WithLabelValues("OK").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.WriteOK(w, p)
}

// loginFailure maps authentication errors onto the fixed wire codes. Expired
// credentials and backend unavailability deliberately collapse into
// LOGIN_FAILED so no extra detail leaks.
func loginFailure(err error) (code, message string) {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return "USER_NOT_FOUND", "No such user."
	case errors.Is(err, auth.ErrAccountLocked):
		return "ACCOUNT_LOCKED", "The account is locked."
	case errors.Is(err, auth.ErrAccountDisabled):
		return "ACCOUNT_DISABLED", "The account is disabled."
	default:
		return "LOGIN_FAILED", "Invalid username or password."
	}
}

// Logout invalidates the caller's session and instructs the client to drop
// the session and anti-forgery cookies.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFrom(r.Context()); sess != nil {
		if err := a.sessions.Delete(r.Context(), sess.ID); err != nil {
			a.log.Errorw("session delete failed", "err", err)
		}
	}
	expire := func(name string, httpOnly bool) {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: httpOnly})
	}
	expire(a.cfg.SessionCookieName, true)
	expire(a.cfg.CSRFCookieName, false)
	response.WriteOK(w, nil)
}

// csrfInfo is the token issuance payload: the token plus the header and
// parameter names the client must echo it back under.
type csrfInfo struct {
	HeaderName    string `json:"headerName"`
	ParameterName string `json:"parameterName"`
	Token         string `json:"token"`
}

// CSRF issues (idempotently) the anti-forgery token bound to the session and
// mirrors it into a client-readable cookie.
func (a *App) CSRF(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	if sess == nil {
		response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
		return
	}
	token, err := a.sessions.EnsureCSRF(r.Context(), sess.ID)
	if err != nil {
		a.log.Errorw("csrf token issuance failed", "err", err)
		response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Token issuance failed.")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	response.WriteOK(w, csrfInfo{HeaderName: a.cfg.CSRFHeaderName, ParameterName: "_csrf", Token: token})
}

// Me returns the authenticated principal snapshot.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
		return
	}
	response.WriteOK(w, p)
}

// Menus returns the caller's accessible menus as a forest.
func (a *App) Menus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
		return
	}
	tree, err := a.menus.UserMenus(r.Context(), p)
	if err != nil {
		a.log.Errorw("menu assembly failed", "tenant", p.TenantCode, "user", p.UserID, "err", err)
		response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Menu lookup failed.")
		return
	}
	response.WriteOK(w, tree)
}
