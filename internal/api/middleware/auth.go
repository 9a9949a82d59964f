package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
	"github.com/dmorales-dev/tienda-api/internal/platform/logger"
	"github.com/dmorales-dev/tienda-api/internal/redact"
	"github.com/dmorales-dev/tienda-api/internal/service/auth"
)

// AuthMiddleware authenticates bearer tokens on every route except CORS
// preflight. Authentication failures terminate the request with 401 before
// validation or any store call happens; they are never retried.
type AuthMiddleware struct {
	verifier auth.TokenVerifier
}

// NewAuthMiddleware creates an AuthMiddleware with the given verifier.
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates the Authorization header and places the verified
// claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			// Preflight requests carry no credentials.
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		header := r.Header.Get("Authorization")
		if header == "" {
			log.Warn("authentication failed", slog.String("reason", "authorization header missing"))
			shared.WriteEnvelope(w, r, http.StatusUnauthorized, "No autorizado", nil)
			return
		}

		token, ok := extractToken(header)
		if !ok {
			log.Warn("authentication failed", slog.String("reason", "malformed authorization header"))
			shared.WriteEnvelope(w, r, http.StatusUnauthorized, "No autorizado", nil)
			return
		}

		claims, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			log.Warn("authentication failed", slog.String("reason", failureReason(err)))
			shared.WriteEnvelope(w, r, http.StatusUnauthorized, authMessage(err), nil)
			return
		}

		// Never the full id, never the token.
		log.Info("request authenticated",
			slog.String("user_hash", redact.UserIDHash(claims.UserID)))

		ctx := shared.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the token out of the Authorization header. Both
// "Bearer <token>" (case-insensitive prefix) and a bare token are accepted.
func extractToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" || strings.EqualFold(header, "bearer") {
		return "", false
	}

	if rest, found := cutPrefixFold(header, "bearer "); found {
		rest = strings.TrimSpace(rest)
		return rest, rest != ""
	}

	// A bare token has no spaces; anything else is a scheme we don't speak.
	if strings.ContainsRune(header, ' ') {
		return "", false
	}
	return header, true
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding on the prefix.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "token not yet valid"
	case errors.Is(err, auth.ErrMissingToken):
		return "token missing"
	default:
		return "token rejected"
	}
}

func authMessage(err error) string {
	if errors.Is(err, auth.ErrExpiredToken) {
		return "Token expirado"
	}
	return "No autorizado"
}
