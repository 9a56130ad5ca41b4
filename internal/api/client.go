// Package api provides HTTP client for communicating with the SmartChef API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request identifier for correlating server logs
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for outgoing requests and renews it on demand
type TokenSource interface {
	// AccessToken returns the current access token, or "" when there is no session
	AccessToken() string

	// Refresh obtains a new access token. It must tear the session down on failure.
	Refresh(ctx context.Context) error
}

// Client is an HTTP client for the SmartChef API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetTokenSource sets the session that authorizes requests
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// RequestOption customizes a single request
type RequestOption func(h http.Header)

// WithHeader sets an extra header on the request
func WithHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

// Request performs an authenticated HTTP request to the API.
// A 401 response to a request that carried a token triggers exactly one token
// refresh; on success the request is replayed once with the new token. When
// another request already replaced the rejected token, the replay uses the
// current token without refreshing again. A 401 on the replay is returned as is.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	sent := c.accessToken()
	err = c.send(ctx, method, path, payload, result, sent, opts)

	var apiErr *APIError
	if sent == "" || !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		return err
	}

	if current := c.accessToken(); current != "" && current != sent {
		c.logger.DebugContext(ctx, "token already refreshed, replaying",
			slog.String("method", method),
			slog.String("path", path),
		)
		return c.send(ctx, method, path, payload, result, current, opts)
	}

	c.logger.DebugContext(ctx, "request unauthorized, refreshing session",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", apiErr.RequestID),
	)

	if refreshErr := c.tokens.Refresh(ctx); refreshErr != nil {
		c.logger.WarnContext(ctx, "session refresh failed",
			slog.String("path", path),
			slog.Any("error", refreshErr),
		)
		return err
	}

	return c.send(ctx, method, path, payload, result, c.accessToken(), opts)
}

// PostPublic performs a POST request without credentials and without the refresh cycle.
// It is used for the authentication endpoints themselves.
func (c *Client) PostPublic(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, payload, result, "", nil)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.Request(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodPost, path, body, result, opts...)
}

// Delete performs a DELETE request. The backend reads the target from the body.
func (c *Client) Delete(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.Request(ctx, http.MethodDelete, path, body, result)
}

func (c *Client) accessToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// send performs a single round trip
func (c *Client) send(ctx context.Context, method, path string, payload []byte, result interface{}, token string, opts []RequestOption) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for _, opt := range opts {
		opt(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody, requestID)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
