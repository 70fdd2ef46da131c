package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/credentials"
	"field-delivery-sync/internal/logx"
)

// Login exchanges username and password for a token pair and stores both
// tokens.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", apperr.ErrInvalid)
	}
	if c.loginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.loginTimeout)
		defer cancel()
	}

	var tok tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/token/", tokenRequest{Username: username, Password: password}, &tok)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if tok.Access == "" {
		return errors.New("login: backend returned an empty access token")
	}
	if err := c.creds.Set(ctx, credentials.AccessTokenKey, tok.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if tok.Refresh != "" {
		if err := c.creds.Set(ctx, credentials.RefreshTokenKey, tok.Refresh); err != nil {
			return fmt.Errorf("store refresh token: %w", err)
		}
	}
	c.logger.Info("logged in", logx.String("username", username))
	return nil
}

// Logout forgets both tokens. The backend keeps no session to close.
func (c *Client) Logout(ctx context.Context) error {
	for _, key := range []string{credentials.AccessTokenKey, credentials.RefreshTokenKey} {
		if err := c.creds.Remove(ctx, key); err != nil {
			return fmt.Errorf("logout: remove %s: %w", key, err)
		}
	}
	c.logger.Info("logged out")
	return nil
}

// IsAuthenticated reports whether a usable access token is stored.
func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := c.creds.Get(ctx, credentials.AccessTokenKey)
	if err != nil {
		return false, fmt.Errorf("read access token: %w", err)
	}
	return credentials.TokenUsable(token, c.now()), nil
}
