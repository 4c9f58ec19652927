package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxBodySize caps the size of a locale resource read over HTTP.
const DefaultMaxBodySize int64 = 10 << 20

// HTTPSource fetches locale resources from an HTTP origin.
type HTTPSource struct {
	// client is reused across requests for connection pooling
	client      *http.Client
	baseURL     string
	pattern     string
	userAgent   string
	maxBodySize int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets a custom HTTP client. Nil clients are ignored.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithPathPattern overrides DefaultPathPattern. The pattern must contain {locale}.
func WithPathPattern(pattern string) HTTPOption {
	return func(s *HTTPSource) {
		if pattern != "" {
			s.pattern = pattern
		}
	}
}

// WithUserAgent sets the User-Agent header of origin requests. Empty values keep
// "localedocs/1.0".
func WithUserAgent(ua string) HTTPOption {
	return func(s *HTTPSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithMaxBodySize limits the size of a response body. Larger bodies fail with
// ErrBodyTooLarge instead of being truncated.
func WithMaxBodySize(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// NewHTTPSource creates a source reading from baseURL, e.g. "https://docs.example.com".
// An empty baseURL produces root-relative requests, which only work with a client whose
// transport resolves them.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		pattern:     DefaultPathPattern,
		userAgent:   "localedocs/1.0",
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the resource URL for locale.
func (s *HTTPSource) URL(locale string) string {
	return s.baseURL + ResourcePath(s.pattern, url.PathEscape(locale))
}

// Fetch issues a GET for the locale resource. Any non-2xx response yields a *StatusError.
func (s *HTTPSource) Fetch(ctx context.Context, locale string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(locale), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > s.maxBodySize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, s.maxBodySize)
	}
	return body, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
