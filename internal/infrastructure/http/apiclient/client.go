// Package apiclient provides the HTTP client used to talk to the Recipe AI backend
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no backend URL is configured
const DefaultBaseURL = "http://localhost:8000"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent without credentials.
type TokenSource interface {
	BearerToken() string
}

// Params are query parameters; values are stringified with fmt.Sprint
type Params map[string]any

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Tokens    TokenSource
	Metrics   *Metrics
	Logger    *zap.Logger
}

// Client handles communication with the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	metrics    *Metrics
	logger     *zap.Logger

	mu           sync.RWMutex
	unauthorized []func()
}

// NewClient creates a new API client instance
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", base)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		tokens:  opts.Tokens,
		metrics: opts.Metrics,
		logger:  logger,
	}, nil
}

// BaseURL returns the backend URL requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers fn to run whenever a request that carried
// credentials is answered with 401. Callbacks run synchronously before
// the failing call returns.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = append(c.unauthorized, fn)
}

// RequestOption customises a single request
type RequestOption func(*requestOptions)

type requestOptions struct {
	token    string
	tokenSet bool
	route    string
}

// WithBearerToken overrides the session token for one request
func WithBearerToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
		o.tokenSet = true
	}
}

// WithRoute names the request for metrics instead of its raw path
func WithRoute(route string) RequestOption {
	return func(o *requestOptions) {
		o.route = route
	}
}

// Get issues a GET request and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, path string, params Params, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, opts...)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

// Patch issues a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, opts...)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, params Params, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	route := ro.route
	if route == "" {
		route = path
	}

	endpoint := c.buildURL(path, params)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token := ro.token
	if !ro.tokenSet && c.tokens != nil {
		token = c.tokens.BearerToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, route, 0, time.Since(start))
		c.logger.Debug("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return newTransportError(err)
	}
	defer resp.Body.Close()

	c.metrics.observe(method, route, resp.StatusCode, time.Since(start))
	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	// Only the session's own token can expire the session; an explicit
	// token belongs to a sign-in that has not taken effect yet.
	if resp.StatusCode == http.StatusUnauthorized && token != "" && !ro.tokenSet {
		c.notifyUnauthorized()
	}

	return c.handleResponse(resp, out)
}

func (c *Client) handleResponse(resp *http.Response, out any) error {
	contentType := resp.Header.Get("Content-Type")
	if !isJSON(contentType) {
		if contentType == "" {
			contentType = "no content type"
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Expected JSON response but received %s", contentType),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "Failed to read server response",
			Cause:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorBody(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "Received a malformed response from the server",
			Cause:      err,
		}
	}
	return nil
}

func (c *Client) notifyUnauthorized() {
	c.mu.RLock()
	listeners := append([]func(){}, c.unauthorized...)
	c.mu.RUnlock()

	c.logger.Info("Backend rejected credentials, expiring session")
	for _, fn := range listeners {
		fn()
	}
}

// buildURL joins the base URL and path and appends the query parameters
func (c *Client) buildURL(path string, params Params) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(params) == 0 {
		return endpoint
	}

	query := url.Values{}
	for k, v := range params {
		if v != nil {
			query.Set(k, fmt.Sprint(v))
		}
	}
	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
