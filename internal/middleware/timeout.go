package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds a single request end to end.
const DefaultRequestTimeout = 30 * time.Second

// Timeout bounds each request with a deadline. The context deadline lets
// downstream database and broker calls abort early, and TimeoutHandler
// guarantees the client gets a response even if the handler never returns.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		wrapped := http.TimeoutHandler(next, timeout, "Request Timeout")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			wrapped.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
