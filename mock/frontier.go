package mock

import (
	"context"

	"github.com/fwojciec/docparse"
)

var _ docparse.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of docparse.URLFrontier.
type URLFrontier struct {
	PushFn func(u docparse.QueuedURL) bool
	PopFn  func() (docparse.QueuedURL, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(u docparse.QueuedURL) bool {
	return f.PushFn(u)
}

func (f *URLFrontier) Pop() (docparse.QueuedURL, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ docparse.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docparse.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
