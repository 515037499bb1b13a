// Package http loads documents over plain HTTP for static pages that don't
// require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/llmfeeder"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// MaxBodySize caps the bytes read from a single response.
const MaxBodySize = 20 << 20

// DefaultUserAgent identifies the fetcher to servers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; llmfeeder)"

// documentTypes are the media types accepted as documents. Servers that
// send no Content-Type are trusted.
var documentTypes = map[string]bool{
	"":                      true,
	"text/html":             true,
	"application/xhtml+xml": true,
	"text/plain":            true,
}

// Response is a fetched HTML document.
type Response struct {
	// URL is the final location after redirects.
	URL  string
	HTML string
}

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// from the charset the server or the document declares.
// Returns EPERMISSION for 401 and 403 responses and ENOCONTENT for
// responses that are not documents.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, llmfeeder.Errorf(llmfeeder.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, llmfeeder.Errorf(llmfeeder.EPERMISSION, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if !documentTypes[mediaType] {
		return nil, llmfeeder.Errorf(llmfeeder.ENOCONTENT, "%s is not an HTML document (%s)", url, mediaType)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &Response{URL: resp.Request.URL.String(), HTML: string(body)}, nil
}
