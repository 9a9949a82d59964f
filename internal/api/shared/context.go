package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/service/auth"
)

// ContextKey is the private type for context values set by this package.
type ContextKey string

const (
	// ClaimsContextKey is the context key for the authenticated user's claims.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context for correlating logs and
// error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithClaims returns a copy of ctx carrying the verified claims. Claims are
// immutable for the life of the request.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext retrieves the verified claims placed in the context by
// the auth middleware. The boolean is false when the request never passed
// authentication.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
