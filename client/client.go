// Package client provides a client for the investmap REST service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/investmap"
	"github.com/etnz/investmap/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// maxBodySize bounds the bytes read from any response.
	maxBodySize = 4 << 20
)

// Client talks to the service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	limiter    *rate.Limiter
	now        func() time.Time

	mu    sync.RWMutex
	token string
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithToken sets the session token sent to secured endpoints.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client, timeout included.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// withClock overrides time.Now for token expiry checks.
func withClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  zerolog.Nop(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// APIError is a non-2xx answer of the service.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("investmap API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Is maps the status code to the investmap error kinds.
func (e *APIError) Is(target error) bool {
	switch target {
	case investmap.ErrAuth:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case investmap.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case investmap.ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case investmap.ErrNetwork:
		return e.StatusCode >= 500
	}
	return false
}

// authorization returns the Authorization header value for a secured call,
// refusing locally when there is no usable token.
func (c *Client) authorization(path string) (string, error) {
	token := c.Token()
	if token == "" {
		return "", fmt.Errorf("%s: %w", path, investmap.ErrAuth)
	}
	sess := session.Session{Token: token}
	if sess.Expired(c.now()) {
		return "", fmt.Errorf("%s: session expired, please login again: %w", path, investmap.ErrAuth)
	}
	return "Bearer " + token, nil
}

// do performs a rate-limited request and returns the body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, secured bool, in any) ([]byte, error) {
	var auth string
	if secured {
		var err error
		if auth, err = c.authorization(path); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", investmap.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("investmap API request")
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", investmap.ErrNetwork, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
			Endpoint:   path,
		}
	}
	return data, nil
}

// doJSON performs the request and decodes a JSON answer into out.
func (c *Client) doJSON(ctx context.Context, method, path string, secured bool, in, out any) error {
	data, err := c.do(ctx, method, path, secured, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", investmap.ErrNetwork, path, err)
	}
	return nil
}

// field performs the request and extracts one string field of the answer.
func (c *Client) field(ctx context.Context, method, path string, secured bool, in any, field string) (string, error) {
	data, err := c.do(ctx, method, path, secured, in)
	if err != nil {
		return "", err
	}
	v, err := lookup(data, field)
	if err != nil {
		return "", fmt.Errorf("%w: %s response: %w", investmap.ErrNetwork, path, err)
	}
	return v, nil
}

// lookup returns the string at the JSON path expr in data.
func lookup(data []byte, expr string) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	got, err := jsonpath.Get(expr, v)
	if err != nil {
		return "", fmt.Errorf("missing %s: %w", expr, err)
	}
	s, ok := got.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string", expr)
	}
	return s, nil
}

// errorMessage extracts a readable message from an error body. The service
// answers errors either in plain text or as JSON with an error or message
// field.
func errorMessage(data []byte, status string) string {
	for _, expr := range []string{"$.error", "$.message"} {
		if msg, err := lookup(data, expr); err == nil && msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return status
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// Login authenticates and keeps the returned token for the next calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	token, err := c.field(ctx, http.MethodPost, "/api/login", false, credentials{Email: email, Password: password}, "$.token")
	if err != nil {
		return "", err
	}
	c.SetToken(token)
	return token, nil
}

// Register creates an account and returns the service message.
func (c *Client) Register(ctx context.Context, email, password, username string) (string, error) {
	return c.field(ctx, http.MethodPost, "/api/register", false, credentials{Email: email, Password: password, Username: username}, "$.message")
}

// Logout tells the service the session ends. The token is forgotten even
// when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	_, err := c.do(ctx, http.MethodGet, "/api/logout", true, nil)
	return err
}

type apiKeyBody struct {
	APIKey string `json:"api_key"`
}

// APIKey returns the market data API key stored for the user.
func (c *Client) APIKey(ctx context.Context) (string, error) {
	return c.field(ctx, http.MethodGet, "/api/api-key", true, nil, "$.api_key")
}

// SaveAPIKey stores the market data API key of the user.
func (c *Client) SaveAPIKey(ctx context.Context, key string) (string, error) {
	return c.field(ctx, http.MethodPost, "/api/api-key", true, apiKeyBody{APIKey: key}, "$.api_key")
}

// Assets returns every record of the user, in service order.
func (c *Client) Assets(ctx context.Context) ([]investmap.AssetRecord, error) {
	var records []investmap.AssetRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/assets", true, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []investmap.AssetRecord{}
	}
	return records, nil
}

// AddAsset records a purchase.
func (c *Client) AddAsset(ctx context.Context, in investmap.AssetInput) (investmap.AssetRecord, error) {
	var r investmap.AssetRecord
	err := c.doJSON(ctx, http.MethodPost, "/api/assets/add", true, in, &r)
	return r, err
}

// SellAsset records a sale.
func (c *Client) SellAsset(ctx context.Context, in investmap.AssetInput) (investmap.AssetRecord, error) {
	var r investmap.AssetRecord
	err := c.doJSON(ctx, http.MethodPost, "/api/assets/sell", true, in, &r)
	return r, err
}

// UpdateAsset replaces the editable fields of the record id.
func (c *Client) UpdateAsset(ctx context.Context, id investmap.ID, in investmap.AssetInput) (investmap.AssetRecord, error) {
	var r investmap.AssetRecord
	err := c.doJSON(ctx, http.MethodPut, "/api/assets/update/"+id.String(), true, in, &r)
	return r, err
}

// DeleteAsset removes the record id.
func (c *Client) DeleteAsset(ctx context.Context, id investmap.ID) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/assets/delete/"+id.String(), true, nil)
	return err
}

type refreshBody struct {
	Symbols []string `json:"symbols"`
}

// RefreshAssets asks the service to update the current price of every record
// with one of the symbols.
func (c *Client) RefreshAssets(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return errors.New("no symbols to refresh")
	}
	_, err := c.do(ctx, http.MethodPost, "/api/refresh-assets", true, refreshBody{Symbols: symbols})
	return err
}

var _ investmap.AssetService = (*Client)(nil)
