// pkg/middleware/recover.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"workgate/pkg/response"
)

func Recover(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorw("panic", "err", rec, "stack", string(debug.Stack()))
					response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
