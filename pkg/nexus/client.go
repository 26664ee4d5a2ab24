package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/repoship/repoship/pkg/httputil"
)

const (
	// metadataTimeout bounds repository metadata reads.
	metadataTimeout = 10 * time.Second

	// DefaultUploadTimeout bounds a single asset upload. Uploads can carry
	// large binaries over slow links, so the bound is generous; a transfer
	// exceeding it counts as a failure for that one asset.
	DefaultUploadTimeout = 5 * time.Minute
)

// Credentials identify the user for every call made through a Client.
type Credentials struct {
	Username string
	Password string
}

// Client talks to one artifact server. It is safe to reuse across calls;
// repoship drives it from a single goroutine.
type Client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
	uploads *http.Client
	cache   *httputil.Cache
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a metadata cache. Repository lookups consult it unless
// the caller requests a refresh. Uploads never touch the cache.
func WithCache(cache *httputil.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithUploadTimeout overrides [DefaultUploadTimeout].
func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) { c.uploads.Timeout = d }
}

// WithHeader sets a header sent on every request, e.g. a run correlation ID.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// NewClient creates a client for the server at baseURL. Credentials are
// applied to every request as HTTP basic auth.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: metadataTimeout},
		uploads: &http.Client{Timeout: DefaultUploadTimeout},
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON performs a GET with retry for transient failures and decodes the
// response body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		c.applyHeaders(req)

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		defer resp.Body.Close()

		if err := checkReadStatus(resp.StatusCode); err != nil {
			return err
		}
		return json.NewDecoder(resp.Body).Decode(v)
	})
}

func (c *Client) applyHeaders(req *http.Request) {
	if c.creds.Username != "" {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// checkReadStatus maps metadata read statuses onto the error taxonomy.
// 5xx responses are retried; the rest fail immediately.
func checkReadStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrUnavailable, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
}

// readBody returns at most limit bytes of a response body as a string,
// for inclusion in error messages.
func readBody(r io.Reader, limit int64) string {
	data, _ := io.ReadAll(io.LimitReader(r, limit))
	return strings.TrimSpace(string(data))
}
