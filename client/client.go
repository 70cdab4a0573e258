// Package client implements the HTTP adapter for the centavo backend
// API. It signs outgoing requests with the current access token and maps
// failed responses onto the error taxonomy in errors.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jdoyle/centavo/storage"
)

// DefaultTimeout bounds every request, so a dead network surfaces as a
// NetworkError rather than a hang.
const DefaultTimeout = 15 * time.Second

const maxErrorBodySize = 64 * 1024

// Client talks to the backend REST API. It owns the bearer token used to
// sign requests; the token is mutated only through SetToken, which keeps
// a single writer (the session manager) instead of process-wide shared
// state.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	store   storage.TokenStore

	mu    sync.RWMutex
	token string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller is
// responsible for setting a timeout on it.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// WithTokenStore wires the persisted token store so that a 401 on an
// authenticated endpoint also clears the stored pair.
func WithTokenStore(s storage.TokenStore) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithLogger sets the structured logger. If not set, a default JSON
// logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return c
}

// SetToken replaces the bearer token attached to outgoing requests. An
// empty string disables request signing.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// credentialEndpoint reports whether a 401 from path means "credentials
// rejected" rather than "session expired".
func credentialEndpoint(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

// do runs one request. body and out may be nil. Responses with status
// >= 400 are always returned as errors, never as silent successes.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

func (c *Client) errorFromResponse(path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	httpErr := HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}

	if resp.StatusCode != http.StatusUnauthorized {
		return &httpErr
	}
	if credentialEndpoint(path) {
		return &AuthenticationError{HTTPError: httpErr}
	}

	// The backend no longer accepts our token. Drop the local copies; the
	// session manager owns the rest of the teardown.
	c.SetToken("")
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("clearing token store after 401", "err", err)
		}
	}
	return &SessionExpiredError{HTTPError: httpErr}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func queryPath(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
