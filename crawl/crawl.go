// Package crawl provides crawl orchestration for documentation sites.
// It coordinates frontier management, rate limiting, fetching, and
// extraction, collecting the results into a Run.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/google/uuid"
)

// Frontier sizing and crawl bounds.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxCrawlPages limits the number of URLs dispatched to prevent runaway crawls.
	maxCrawlPages = 10000
)

// Crawler orchestrates the crawling of documentation sites.
type Crawler struct {
	Fetcher   docparse.Fetcher
	Extractor docparse.Extractor

	// Sitemaps, when set, seeds the frontier with sitemap-discovered URLs
	// in addition to the start URL.
	Sitemaps docparse.SitemapService

	// RateLimiter paces requests per domain. When nil, a limiter allowing
	// one request per configured delay is used.
	RateLimiter docparse.DomainLimiter

	// RetryDelays overrides the backoff schedule derived from the config's
	// retry count. Useful for testing without waiting for real delays.
	RetryDelays []time.Duration
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Depth     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL. A nil page
// means the attempt was abandoned on cancellation and is not counted.
type crawlResult struct {
	page  *docparse.PageResult
	err   error
	bytes int
}

// Crawl fetches the start URL and follows same-host links breadth-first up
// to the configured depth, returning a Run with one PageResult per fetched
// URL. Page failures are recorded in the Run and the crawl continues; only
// context cancellation aborts it, in which case the partial Run is returned
// along with the context error.
//
// The progress callback, if provided, receives events as crawling proceeds.
// It is called from a single goroutine.
func (c *Crawler) Crawl(ctx context.Context, config docparse.CrawlConfig, progress ProgressFunc) (*docparse.Run, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	filter, err := config.Filter()
	if err != nil {
		return nil, err
	}
	startURL, err := url.Parse(config.StartURL)
	if err != nil || startURL.Host == "" {
		return nil, docparse.Errorf(docparse.EINVALID, "invalid start URL %q", config.StartURL)
	}

	run := &docparse.Run{
		ID:        uuid.New().String(),
		StartURL:  config.StartURL,
		Config:    config,
		StartedAt: time.Now().UTC(),
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(docparse.QueuedURL{URL: config.StartURL})
	c.seedFromSitemap(ctx, config, startURL.Host, filter, frontier)

	limiter := c.RateLimiter
	if limiter == nil {
		limiter = NewDelayLimiter(config.Delay)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: config.StartURL})
	}

	c.walk(ctx, &walkState{
		run:      run,
		config:   config,
		host:     startURL.Host,
		limiter:  limiter,
		filter:   filter,
		frontier: frontier,
		progress: progress,
	})

	run.FinishedAt = time.Now().UTC()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: run.Stats.Fetched})
	}

	if ctx.Err() != nil {
		return run, ctx.Err()
	}
	return run, nil
}

// seedFromSitemap enqueues same-host sitemap URLs at depth 0. Discovery
// failures are not fatal; the start URL alone is a valid seed.
func (c *Crawler) seedFromSitemap(ctx context.Context, config docparse.CrawlConfig, host string, filter *docparse.URLFilter, frontier *Frontier) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, config.StartURL, filter)
	if err != nil {
		return
	}
	for _, u := range urls {
		if !sameHost(u, host) {
			continue
		}
		frontier.Push(docparse.QueuedURL{URL: u})
	}
}

// processURL fetches and extracts a single URL.
func (c *Crawler) processURL(ctx context.Context, config docparse.CrawlConfig, limiter docparse.DomainLimiter, queued docparse.QueuedURL) crawlResult {
	page := &docparse.PageResult{
		ID:    uuid.New().String(),
		URL:   queued.URL,
		Depth: queued.Depth,
	}

	pageURL, err := url.Parse(queued.URL)
	if err != nil {
		page.Outcome = docparse.OutcomeHTTPError
		page.Err = err.Error()
		page.FetchedAt = time.Now().UTC()
		return crawlResult{page: page, err: err}
	}

	// Rate limit
	if err := limiter.Wait(ctx, pageURL.Host); err != nil {
		return crawlResult{}
	}

	// Fetch with retry; each attempt gets its own timeout
	delays := c.RetryDelays
	if delays == nil {
		delays = RetryDelays(config.Retries)
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		fctx, cancel := context.WithTimeout(ctx, config.Timeout)
		defer cancel()
		return c.Fetcher.Fetch(fctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, queued.URL, fetchFn, nil, delays)
	page.FetchedAt = time.Now().UTC()
	if err != nil {
		if ctx.Err() != nil {
			return crawlResult{}
		}
		page.Outcome = outcomeForFetchError(err)
		page.Err = err.Error()
		return crawlResult{page: page, err: err}
	}

	extracted, err := c.Extractor.Extract(queued.URL, html)
	if err != nil {
		page.Outcome = docparse.OutcomeParseError
		page.Err = err.Error()
		return crawlResult{page: page, err: err, bytes: len(html)}
	}

	page.Profile = extracted.Profile
	page.Title = extracted.Title
	page.Description = extracted.Description
	page.ContentHTML = extracted.ContentHTML
	page.ContentText = extracted.ContentText
	page.NavHTML = extracted.NavHTML
	page.Links = extracted.Links
	page.Outcome = docparse.OutcomeSuccess
	if extracted.ContentText != "" {
		page.ContentHash = computeHash(extracted.ContentText)
	}

	return crawlResult{page: page, bytes: len(html)}
}

// outcomeForFetchError maps a fetch error to a page outcome.
func outcomeForFetchError(err error) docparse.Outcome {
	if docparse.ErrorCode(err) == docparse.ETIMEOUT {
		return docparse.OutcomeTimeout
	}
	return docparse.OutcomeHTTPError
}

func sameHost(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == host
}
