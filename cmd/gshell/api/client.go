package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// maxResponseBody is the maximum size of response body to read (10MB)
const maxResponseBody = 10 << 20

// DefaultTimeout is used when no timeout option is given.
const DefaultTimeout = 30 * time.Second

const (
	headerAuthorization = "Authorization"
	headerDeviceType    = "X-Device-Type"
	headerTokenID       = "tokenId"
)

// ErrResponseTooLarge is returned when the response body exceeds maxResponseBody
var ErrResponseTooLarge = errors.New("response body too large")

// ErrInvalidBaseURL is returned when the base URL is empty or malformed
var ErrInvalidBaseURL = errors.New("invalid base URL: must be non-empty with scheme and host")

// Interceptor can rewrite or reject a request before it is sent.
type Interceptor func(req *http.Request) error

// Client is an HTTP client for the shell's backend API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	headers      http.Header
	interceptors []Interceptor
	mu           sync.RWMutex
	token        string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithHeader adds a header sent with every request. Empty values are skipped.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.headers.Set(key, value)
		}
	}
}

// WithDevice sets the X-Device-Type and tokenId headers the backend expects.
func WithDevice(deviceType, tokenID string) Option {
	return func(c *Client) {
		WithHeader(headerDeviceType, deviceType)(c)
		WithHeader(headerTokenID, tokenID)(c)
	}
}

// WithInterceptor appends an interceptor. Interceptors run in the order they
// were added, after the default headers and the auth interceptor.
func WithInterceptor(i Interceptor) Option {
	return func(c *Client) {
		if i != nil {
			c.interceptors = append(c.interceptors, i)
		}
	}
}

// NewClient creates a new API client.
// Returns an error if baseURL is empty or malformed (missing scheme/host).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}

	parsed, err := url.ParseRequestURI(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: http.Header{},
	}
	c.interceptors = []Interceptor{c.defaultHeaders, c.authorize}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken sets the JWT token for authenticated requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current JWT token in a thread-safe manner
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) defaultHeaders(req *http.Request) error {
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	return nil
}

// authorize adds the bearer token to every request except the login call.
func (c *Client) authorize(req *http.Request) error {
	if strings.Contains(req.URL.String(), "login") {
		return nil
	}
	if token := c.Token(); token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	return nil
}

// Response wraps API responses
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorResponse  `json:"error,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       json.RawMessage `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
}

// ErrorString safely returns the error message from a Response.
// Returns empty string for successful responses.
func (r *Response) ErrorString() string {
	if r == nil {
		return "no response"
	}
	if r.Success {
		return ""
	}
	if r.Error == nil {
		return "unknown error"
	}
	if r.Error.Code != "" {
		return r.Error.Code + ": " + r.Error.Message
	}
	return r.Error.Message
}

// marshalBody converts body to JSON reader, returns nil if body is nil
func marshalBody(body interface{}) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewBuffer(jsonBody), nil
}

// readResponseBody reads and validates response body size
func readResponseBody(body io.ReadCloser) ([]byte, error) {
	respBody, err := io.ReadAll(io.LimitReader(body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(respBody) > maxResponseBody {
		return nil, ErrResponseTooLarge
	}
	return respBody, nil
}

// parseErrorResponse attempts to parse an error response from body
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp Response
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
		if errResp.Error.Code != "" {
			return fmt.Errorf("HTTP %d: %s: %s", statusCode, errResp.Error.Code, errResp.Error.Message)
		}
		return fmt.Errorf("HTTP %d: %s", statusCode, errResp.Error.Message)
	}
	// rune-safe truncation
	runes := []rune(string(body))
	if len(runes) > 200 {
		return fmt.Errorf("HTTP %d: %s...", statusCode, string(runes[:200]))
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(runes))
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	reqBody, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	if path != "" && path[0] != '/' {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return nil, fmt.Errorf("request rejected: %w", err)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readResponseBody(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseErrorResponse(resp.StatusCode, respBody)
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return &Response{Success: true}, nil
	}

	var apiResp Response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &apiResp, nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}
