package docparse

import "context"

// QueuedURL is a frontier entry: a canonicalized URL and the depth it was
// discovered at.
type QueuedURL struct {
	URL   string
	Depth int
}

// URLFrontier manages the crawl queue with deduplication. Ordering is FIFO,
// which makes discovery breadth-first. Once a URL has been pushed it is
// visited forever; popping does not forget it.
type URLFrontier interface {
	// Push adds a URL to the queue and marks it visited.
	// Returns false if the URL has already been seen.
	Push(u QueuedURL) bool

	// Pop returns the oldest queued URL.
	// Returns false if the frontier is empty.
	Pop() (QueuedURL, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen returns true if the URL has been queued at any point.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
