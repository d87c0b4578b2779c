package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/docparse"
	"golang.org/x/time/rate"
)

var _ docparse.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// NewDelayLimiter creates a DomainLimiter that allows one request per delay
// interval to each domain. This is the pacing model the crawl configuration
// expresses: the delay applies between requests to the same domain, however
// many workers are running.
func NewDelayLimiter(delay time.Duration) *DomainLimiter {
	if delay <= 0 {
		delay = docparse.DefaultDelay
	}
	return NewDomainLimiter(float64(time.Second) / float64(delay))
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
