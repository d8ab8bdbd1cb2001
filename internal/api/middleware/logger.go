package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Logger logs each request's method, path, status, response size and
// duration. Health probes are logged only when they fail, so the
// scheduler's checks do not drown out real traffic.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if r.URL.Path == "/api/system/health" && wrapped.statusCode < 400 {
			return
		}

		// Strip CR/LF from user-supplied values to prevent log injection.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		log.Printf(
			"%s %s %d %dB %s",
			sanitize(r.Method),
			sanitize(r.URL.Path),
			wrapped.statusCode,
			wrapped.bytes,
			time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
// and the number of body bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}
