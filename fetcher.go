package docparse

import "context"

// Fetcher retrieves raw HTML from URLs.
//
// Failures carry application error codes so callers can classify them:
// ETIMEOUT for deadline expiry, EUNAVAILABLE for transport errors,
// ENOTFOUND for 404, EINVALID for other 4xx, EINTERNAL for 5xx. Only
// ETIMEOUT and EUNAVAILABLE are transient; status errors are permanent.
type Fetcher interface {
	// Fetch retrieves the page body. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RetryableError reports whether a fetch error is transient and worth
// retrying. Non-2xx statuses are permanent; only timeouts and transport
// failures qualify.
func RetryableError(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, EUNAVAILABLE:
		return true
	}
	return false
}
