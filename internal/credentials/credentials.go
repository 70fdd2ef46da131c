// Package credentials keeps the backend access and refresh tokens.
package credentials

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys shared with the mobile client.
const (
	AccessTokenKey  = "@auth_token"
	RefreshTokenKey = "@refresh_token"
)

// Storage is a persistent key-value store for credentials. Get returns an
// empty string for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// TokenUsable reports whether an access token may be sent. Opaque tokens are
// usable whenever present; JWTs additionally must not be past their exp claim.
// The signature is not checked here, the backend does that.
func TokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}
