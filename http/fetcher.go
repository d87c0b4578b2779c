// Package http provides HTTP-based implementations of docparse.Fetcher
// and docparse.SitemapService for static documentation sites.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/fwojciec/docparse"
)

// DefaultMaxBodySize caps how much of a response body Fetch reads.
const DefaultMaxBodySize = 10 << 20 // 10MB

// Ensure Fetcher implements docparse.Fetcher at compile time.
var _ docparse.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and is suitable for static sites only.
//
// Timeouts come from the request context; failures are classified with
// docparse error codes so callers can tell transient errors from
// permanent ones.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to docparse.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum number of response body bytes read
// per request. Bodies larger than the limit are truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient sets the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent:   docparse.DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docparse.Errorf(docparse.EINVALID, "invalid request URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", transportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", transportError(url, err)
	}

	return string(body), nil
}

// Close releases idle connections held by the underlying client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// transportError classifies a connection-level failure. Deadline expiry
// maps to ETIMEOUT, everything else to EUNAVAILABLE; both are retryable.
// Context cancellation passes through unchanged so callers can detect it.
func transportError(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return docparse.Errorf(docparse.ETIMEOUT, "request timed out for %s", url)
	}
	return docparse.Errorf(docparse.EUNAVAILABLE, "request failed for %s: %v", url, err)
}

// statusError maps a non-2xx status to an application error. Status
// errors are permanent and never retried.
func statusError(url string, status int) error {
	switch {
	case status == http.StatusNotFound:
		return docparse.Errorf(docparse.ENOTFOUND, "page not found: %s", url)
	case status >= 400 && status < 500:
		return docparse.Errorf(docparse.EINVALID, "HTTP %d for %s", status, url)
	default:
		return docparse.Errorf(docparse.EINTERNAL, "HTTP %d for %s", status, url)
	}
}
