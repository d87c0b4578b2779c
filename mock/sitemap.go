package mock

import (
	"context"

	"github.com/fwojciec/docparse"
)

var _ docparse.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docparse.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docparse.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docparse.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
