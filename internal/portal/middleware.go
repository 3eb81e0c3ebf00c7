// internal/portal/middleware.go
package portal

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"workgate/internal/auth"
	"workgate/internal/session"
	"workgate/pkg/response"
)

type sessionCtxKey struct{}

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFrom returns the live session bound by SessionAuth, or nil.
func SessionFrom(ctx context.Context) *session.Session {
	if v := ctx.Value(sessionCtxKey{}); v != nil {
		return v.(*session.Session)
	}
	return nil
}

// SessionAuth resolves the session cookie into a principal on the request
// context. A missing, expired, or invalidated session just leaves the request
// unauthenticated; rejection is the job of the authorization layers below.
func (a *App) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.cfg.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := a.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := withSession(r.Context(), sess)
		ctx = auth.WithIdentity(ctx, sess.Principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth enforces the generic authenticated-only policy on the API
// namespace. The login submission is open, and logout stays reachable with a
// stale or missing cookie so old clients can always clear theirs; everything
// outside /api/ (health, metrics) bypasses.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, "/api/") || path == "/api/user/login" || path == "/api/user/logout" {
			next.ServeHTTP(w, r)
			return
		}
		if auth.IdentityFrom(r.Context()) == nil {
			a.log.Warnw("authentication required", "path", path)
			response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// csrfExempt lists the endpoints that never require an anti-forgery token:
// login submission, token issuance, and logout.
func csrfExempt(r *http.Request) bool {
	switch r.URL.Path {
	case "/api/user/login", "/api/user/csrf", "/api/user/logout":
		return true
	}
	return false
}

// CSRFProtect rejects state-mutating API requests whose presented token does
// not match the one bound to the session, before any business logic runs.
func (a *App) CSRFProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/api/") || csrfExempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		sess := SessionFrom(r.Context())
		if sess == nil || sess.CSRFToken == "" {
			a.log.Warnw("csrf rejected: no token bound to session", "path", r.URL.Path)
			response.WriteFail(w, http.StatusForbidden, "CSRF_TOKEN_INVALID", "Missing or invalid anti-forgery token.")
			return
		}
		presented := r.Header.Get(a.cfg.CSRFHeaderName)
		if presented == "" {
			presented = r.PostFormValue("_csrf")
		}
		if presented != sess.CSRFToken {
			a.log.Warnw("csrf rejected: token mismatch", "path", r.URL.Path)
			response.WriteFail(w, http.StatusForbidden, "CSRF_TOKEN_INVALID", "Missing or invalid anti-forgery token.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// menuIDPattern matches API paths whose first segment is a menu code,
// e.g. /api/FW0001/list.
var menuIDPattern = regexp.MustCompile(`^/api/([A-Z0-9]+)(?:/.*)?$`)

// menuFilterSkips reports paths outside the filter's remit: identity
// endpoints, the menu listing itself, and anything not under the API
// namespace.
func menuFilterSkips(path string) bool {
	return strings.HasPrefix(path, "/api/user/") ||
		path == "/api/menus" ||
		!strings.HasPrefix(path, "/api/")
}

// MenuFilter authorizes menu-scoped API requests against the principal's
// accessible menu set. Stateless across requests: every input comes from the
// current request and the principal computed at login.
func (a *App) MenuFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if menuFilterSkips(path) {
			next.ServeHTTP(w, r)
			return
		}
		m := menuIDPattern.FindStringSubmatch(path)
		if m == nil {
			// Not every endpoint is menu-scoped.
			next.ServeHTTP(w, r)
			return
		}
		menuID := m[1]

		identity := auth.IdentityFrom(r.Context())
		if identity == nil {
			a.log.Warnw("unauthenticated access attempt to menu", "menuId", menuID)
			menuDenials.WithLabelValues("unauthenticated").Inc()
			response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
			return
		}
		p, ok := identity.(*auth.Principal)
		if !ok {
			// Wiring defect upstream, not a user error.
			a.log.Errorw("authenticated identity has unexpected shape", "menuId", menuID)
			menuDenials.WithLabelValues("invalid_principal").Inc()
			response.WriteFail(w, http.StatusForbidden, "INVALID_USER_TYPE", "An error occurred while processing user information.")
			return
		}
		if !p.CanAccess(menuID) {
			a.log.Warnw("menu access denied", "menuId", menuID, "tenant", p.TenantCode, "user", p.UserID)
			menuDenials.WithLabelValues("not_granted").Inc()
			response.WriteFail(w, http.StatusForbidden, "MENU_ACCESS_DENIED", "You do not have access to this menu.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
