// Package gateway adapts the hosted auth/data service. Every wire
// response is a {data, error} envelope; an absent error signals
// success. Raw gateway error text is mapped to typed errors at this
// boundary and never propagated into branching logic above it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
)

// authRateBurst allows a short burst of auth calls (e.g. a login retry
// right after a failed attempt) before the limiter kicks in.
const authRateBurst = 4

var _ model.AuthGateway = (*Client)(nil)

// Client talks to the gateway over HTTPS. The base URL is overridable
// so tests can point it at an httptest server.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *logger.Logger
	authLimit  *rate.Limiter

	mu sync.Mutex
	// accessToken is the bearer credential for data-API calls,
	// set after a successful sign-in.
	accessToken string
	// recoveryToken is the single-use credential installed by
	// ConsumeRecoveryLink and cleared after a password update.
	recoveryToken string
	recoveryEmail string

	subMu       sync.Mutex
	subscribers map[int]chan model.AuthEvent
	nextSubID   int
	closed      bool
}

// NewClient creates a gateway client. authRPS bounds how fast the
// client hits the auth endpoints; the hosted service throttles abusive
// callers, so the client stays under its own ceiling.
func NewClient(baseURL, anonKey string, httpClient *http.Client, logger *logger.Logger, authRPS float64) *Client {
	return &Client{
		baseURL:     baseURL,
		anonKey:     anonKey,
		httpClient:  httpClient,
		logger:      logger,
		authLimit:   rate.NewLimiter(rate.Limit(authRPS), authRateBurst),
		subscribers: make(map[int]chan model.AuthEvent),
	}
}

// wireError is the error half of the {data, error} envelope.
type wireError struct {
	Message string `json:"message"`
}

// envelope is the gateway's uniform response shape.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *wireError      `json:"error"`
}

// gatewayError carries the raw wire message for boundary mapping. It
// must not escape this package; callers see the typed model errors.
type gatewayError struct {
	status  int
	message string
}

func (e *gatewayError) Error() string {
	return fmt.Sprintf("gateway: status %d: %s", e.status, e.message)
}

// do performs one round-trip and decodes the envelope's data into out
// (when out is non-nil). A wire-level error comes back as
// *gatewayError; transport and decoding failures come back wrapped.
func (c *Client) do(ctx context.Context, method, path string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if tok := c.bearerToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway: request failed",
			"method", method,
			"path", path,
			"error", err.Error())
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("gateway: malformed response",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if env.Error != nil {
		return &gatewayError{status: resp.StatusCode, message: env.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &gatewayError{status: resp.StatusCode, message: http.StatusText(resp.StatusCode)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode gateway payload: %w", err)
		}
	}
	return nil
}

func (c *Client) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recoveryToken != "" {
		return c.recoveryToken
	}
	return c.accessToken
}

func (c *Client) setAccessToken(tok string) {
	c.mu.Lock()
	c.accessToken = tok
	c.mu.Unlock()
}
