// Package auth verifies bearer tokens issued by the external identity
// provider. This service never issues tokens; it only checks signature,
// lifetime, issuer, and audience, and extracts the claims the pipeline
// cares about.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmorales-dev/tienda-api/internal/config"
)

// Claims is the normalized identity extracted from a verified token.
// Immutable for the life of the request.
type Claims struct {
	// UserID is the token subject.
	UserID string
	// Email is the email claim, empty when the provider omits it.
	Email string
}

// TokenVerifier validates a bearer token string and extracts claims.
type TokenVerifier interface {
	// Verify validates the provided token string. Returns the claims if the
	// token is valid, or ErrExpiredToken / ErrTokenNotYetValid /
	// ErrInvalidToken if validation fails.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// hmacVerifier is a TokenVerifier for HMAC-SHA256 signed tokens.
type hmacVerifier struct {
	signingKey []byte
	issuer     string
	audience   string
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration    // Allowed drift between our clock and the issuer's
}

// idTokenClaims is the raw claim set carried by the provider's tokens.
type idTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var _ TokenVerifier = (*hmacVerifier)(nil)

// NewVerifier creates a TokenVerifier from the auth configuration.
func NewVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacVerifier{
		signingKey: []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		timeFunc:   time.Now,
		clockSkew:  2 * time.Minute,
	}, nil
}

// Verify implements TokenVerifier.
func (v *hmacVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&idTokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(*idTokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}
