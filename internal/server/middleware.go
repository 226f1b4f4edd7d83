package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/hywnj/cursor-todo/internal/instrumentation"
	"github.com/hywnj/cursor-todo/internal/logging"
)

// requestID tags every request so a page load and the store calls it
// triggers can be correlated in the logs.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// observe logs each request and records HTTP metrics keyed by the chi
// route pattern, not the raw path, so per-task URLs don't explode the
// label space.
func observe(logger *slog.Logger, metrics *instrumentation.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			elapsed := time.Since(start)

			metrics.RecordHTTPRequest(r.Context(), r.Method, pattern, ww.Status(), elapsed)
			logger.Info("request",
				"method", r.Method,
				"path", pattern,
				logging.HTTPStatus(ww.Status()),
				logging.Duration(elapsed),
			)
		})
	}
}
