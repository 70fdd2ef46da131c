// Package backend is the REST client of the delivery backend. Every request
// carries the stored bearer token, and a 401 response drops it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/credentials"
	"field-delivery-sync/internal/logx"
)

const maxErrorBody = 4 << 10

type counter interface {
	Inc()
}

// Config configures Client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	LoginTimeout time.Duration
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps well-known statuses onto the application sentinels.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.ErrUnauthorized
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ErrInvalid
	case http.StatusConflict:
		return apperr.ErrConflict
	default:
		return nil
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Client talks to the backend REST API.
type Client struct {
	baseURL      string
	http         *http.Client
	creds        credentials.Storage
	logger       logx.Logger
	unauthorized counter
	loginTimeout time.Duration
	now          func() time.Time
}

// NewClient builds a Client. httpClient may be nil, in which case a client
// with cfg.Timeout is used. unauthorized may be nil.
func NewClient(cfg Config, httpClient *http.Client, creds credentials.Storage, logger logx.Logger, unauthorized counter) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend: base URL is required")
	}
	if creds == nil {
		return nil, errors.New("backend: credentials storage is required")
	}
	logger = logx.OrNop(logger)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:      base,
		http:         httpClient,
		creds:        creds,
		logger:       logger,
		unauthorized: unauthorized,
		loginTimeout: cfg.LoginTimeout,
		now:          time.Now,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token, err := c.creds.Get(ctx, credentials.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and turns non-2xx answers into *StatusError. The caller owns
// the body of a successful response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode == http.StatusUnauthorized {
		c.dropAccessToken(req.Context())
	}
	return nil, &StatusError{
		Method: req.Method,
		Path:   req.URL.Path,
		Code:   resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

func (c *Client) dropAccessToken(ctx context.Context) {
	if c.unauthorized != nil {
		c.unauthorized.Inc()
	}
	// the request context may already be done; the removal must still happen
	ctx = context.WithoutCancel(ctx)
	if err := c.creds.Remove(ctx, credentials.AccessTokenKey); err != nil {
		c.logger.Error("remove access token", logx.Err(err))
		return
	}
	c.logger.Warn("backend rejected access token, credentials cleared")
}

// doJSON sends in (when non-nil) as JSON and decodes the answer into out
// (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", resp.Request.Method, resp.Request.URL.Path, err)
	}
	return nil
}
