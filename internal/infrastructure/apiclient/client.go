// Package apiclient talks to the external inventory REST API. Every request
// carries the caller's bearer token when one is active; the client holds no
// business logic of its own.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// TokenSource yields the active bearer token, or "" when there is none.
type TokenSource func(ctx context.Context) string

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for failed requests.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     zerolog.Logger
}

var _ ports.InventoryAPI = (*Client)(nil)

// New returns a Client for baseURL. tokens may be nil for anonymous calls.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Factory returns a ports.APIFactory that shares this client's settings and
// swaps in a per-session token source.
func (c *Client) Factory() ports.APIFactory {
	return func(tokens func(ctx context.Context) string) ports.InventoryAPI {
		clone := *c
		clone.tokens = tokens
		return &clone
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: response carried no access_token")
	}
	return resp.AccessToken, nil
}

// List decodes GET /<resource> into out.
func (c *Client) List(ctx context.Context, resource string, out any) error {
	return c.Do(ctx, http.MethodGet, "/"+strings.TrimPrefix(resource, "/"), nil, out)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Do sends one JSON request. body and out may be nil. Non-2xx answers are
// returned as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("inventory api unreachable")
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		apiErr.Message = errorMessage(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("inventory api error")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts the API's {"message": ...} field. NestJS-style APIs
// may send an array of validation messages instead of a string.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(r)
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Message) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return string(envelope.Message)
}
