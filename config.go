package docparse

import (
	"regexp"
	"time"
)

// Configuration defaults and bounds consumed by the crawl orchestrator.
const (
	DefaultMaxDepth = 3
	MinMaxDepth     = 1
	MaxMaxDepth     = 10

	DefaultDelay = 500 * time.Millisecond
	MinDelay     = 100 * time.Millisecond
	MaxDelay     = 10 * time.Second

	DefaultTimeout = 30 * time.Second
	MinTimeout     = 5 * time.Second
	MaxTimeout     = 120 * time.Second

	DefaultRetries = 3
	MaxRetries     = 10

	DefaultWorkers = 1
	MaxWorkers     = 16

	DefaultUserAgent = "docparse/1.0"
)

// CrawlConfig is the configuration surface consumed by the crawl
// orchestrator. The zero value is not usable; start from
// DefaultCrawlConfig.
type CrawlConfig struct {
	// StartURL seeds the frontier at depth 0. Required.
	StartURL string `json:"startUrl" yaml:"start_url"`

	// MaxDepth bounds link-following; pages deeper than this are never
	// fetched.
	MaxDepth int `json:"maxDepth" yaml:"max_depth"`

	// Delay paces requests to the same domain. It applies between
	// requests, not as a per-request minimum latency.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Timeout bounds each fetch attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Retries bounds retry attempts for transient fetch failures.
	Retries int `json:"retries" yaml:"retries"`

	// Include restricts the crawl to URLs matching this pattern, when set.
	Include string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude drops URLs matching this pattern, when set. Applied after
	// Include.
	Exclude string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// FollowLinks enables enqueueing links discovered on fetched pages.
	FollowLinks bool `json:"followLinks" yaml:"follow_links"`

	// SaveAssets marks the run for asset download by exporters. The
	// orchestrator itself never fetches assets.
	SaveAssets bool `json:"saveAssets" yaml:"save_assets"`

	// Workers sets the fetch worker pool size.
	Workers int `json:"workers" yaml:"workers"`

	// UserAgent is sent with every request.
	UserAgent string `json:"userAgent" yaml:"user_agent"`
}

// DefaultCrawlConfig returns a config with every field at its default.
// StartURL must still be set by the caller.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		MaxDepth:    DefaultMaxDepth,
		Delay:       DefaultDelay,
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		FollowLinks: true,
		SaveAssets:  false,
		Workers:     DefaultWorkers,
		UserAgent:   DefaultUserAgent,
	}
}

// Validate returns an error if any field is missing or out of range.
// Configuration errors are fatal and reported before any fetch begins.
func (c *CrawlConfig) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	if c.MaxDepth < MinMaxDepth || c.MaxDepth > MaxMaxDepth {
		return Errorf(EINVALID, "max depth %d out of range [%d, %d]", c.MaxDepth, MinMaxDepth, MaxMaxDepth)
	}
	if c.Delay < MinDelay || c.Delay > MaxDelay {
		return Errorf(EINVALID, "delay %s out of range [%s, %s]", c.Delay, MinDelay, MaxDelay)
	}
	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return Errorf(EINVALID, "timeout %s out of range [%s, %s]", c.Timeout, MinTimeout, MaxTimeout)
	}
	if c.Retries < 0 || c.Retries > MaxRetries {
		return Errorf(EINVALID, "retries %d out of range [0, %d]", c.Retries, MaxRetries)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return Errorf(EINVALID, "workers %d out of range [1, %d]", c.Workers, MaxWorkers)
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	return nil
}

// Filter compiles the include/exclude patterns into a URLFilter.
// Returns nil when neither pattern is set.
func (c *CrawlConfig) Filter() (*URLFilter, error) {
	if c.Include == "" && c.Exclude == "" {
		return nil, nil
	}
	f := &URLFilter{}
	if c.Include != "" {
		re, err := regexp.Compile(c.Include)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q", c.Include)
		}
		f.Include = append(f.Include, re)
	}
	if c.Exclude != "" {
		re, err := regexp.Compile(c.Exclude)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q", c.Exclude)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}
