// pkg/middleware/accesslog.go
package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// AccessLog emits one structured line per completed request with the status
// code and wall time.
func AccessLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status(),
				"durationMs", time.Since(start).Milliseconds(),
				"requestId", RequestIDFrom(r.Context()),
			)
		})
	}
}

// statusWriter records the first status code written; later calls pass
// through untouched.
type statusWriter struct {
	http.ResponseWriter
	wrote int32
	code  int
}

func (s *statusWriter) WriteHeader(code int) {
	if atomic.CompareAndSwapInt32(&s.wrote, 0, 1) {
		s.code = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if atomic.CompareAndSwapInt32(&s.wrote, 0, 1) {
		s.code = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusWriter) status() int {
	if atomic.LoadInt32(&s.wrote) == 0 {
		return http.StatusOK
	}
	return s.code
}
