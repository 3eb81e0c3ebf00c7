// pkg/middleware/cors.go
package middleware

import (
	"net/http"
	"strings"
)

// CORS sets cross-origin headers and answers preflight requests.
// allowed may contain exact origins or "*". Credentials are always allowed
// because the frontend authenticates with the session cookie.
func CORS(allowed []string) func(http.Handler) http.Handler {
	match := func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		for _, a := range allowed {
			a = strings.TrimSpace(a)
			if a == "*" || a == origin {
				return a, true
			}
		}
		return "", false
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if ao, ok := match(origin); ok {
				w.Header().Set("Access-Control-Allow-Origin", ao)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-XSRF-TOKEN")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "3600")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
