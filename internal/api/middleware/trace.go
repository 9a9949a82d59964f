// Package middleware contains the HTTP middleware chain applied in front of
// the route dispatchers: trace IDs, CORS handling, and bearer-token
// authentication.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
	"github.com/dmorales-dev/tienda-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and binds a request-scoped
// logger carrying it. Applied first so every later log line correlates.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
