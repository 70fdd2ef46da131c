package credentials_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"field-delivery-sync/internal/credentials"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestTokenUsable(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	require.False(t, credentials.TokenUsable("", now))
	require.True(t, credentials.TokenUsable("opaque-token", now))
	require.True(t, credentials.TokenUsable(signed(t, now.Add(time.Hour)), now))
	require.False(t, credentials.TokenUsable(signed(t, now.Add(-time.Minute)), now))
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s := credentials.NewFileStore(path)

	v, err := s.Get(ctx, credentials.AccessTokenKey)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, s.Set(ctx, credentials.AccessTokenKey, "access"))
	require.NoError(t, s.Set(ctx, credentials.RefreshTokenKey, "refresh"))

	reopened := credentials.NewFileStore(path)
	v, err = reopened.Get(ctx, credentials.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "access", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, reopened.Remove(ctx, credentials.AccessTokenKey))
	require.NoError(t, reopened.Remove(ctx, credentials.AccessTokenKey))

	v, err = s.Get(ctx, credentials.AccessTokenKey)
	require.NoError(t, err)
	require.Empty(t, v)

	v, err = s.Get(ctx, credentials.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "refresh", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := credentials.NewFileStore(path).Get(context.Background(), credentials.AccessTokenKey)
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := credentials.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", "v"))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)

	require.NoError(t, s.Remove(ctx, "k"))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, v)
}
