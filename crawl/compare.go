package crawl

import "github.com/fwojciec/docparse"

// compareThreshold is the content length ratio above which the baseline is
// considered to have found substantially more content than the engine.
const compareThreshold = 1.5

// Comparison reports how the profile engine's extraction stacks up against
// a baseline extractor for one page.
type Comparison struct {
	// Profile is the profile the engine selected for the page.
	Profile string

	// EngineLen and BaselineLen are the extracted content text lengths.
	EngineLen   int
	BaselineLen int

	// Richer is true when the baseline found substantially more content
	// than the engine, suggesting the profile's selectors miss content on
	// this page.
	Richer bool
}

// CompareExtractors runs both extractors over the same page and compares
// the amount of content each recovers. Extraction errors from either side
// are returned as-is.
func CompareExtractors(engine, baseline docparse.Extractor, pageURL, html string) (*Comparison, error) {
	engineResult, err := engine.Extract(pageURL, html)
	if err != nil {
		return nil, err
	}
	baselineResult, err := baseline.Extract(pageURL, html)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Profile:     engineResult.Profile,
		EngineLen:   len(engineResult.ContentText),
		BaselineLen: len(baselineResult.ContentText),
	}

	if cmp.EngineLen == 0 {
		cmp.Richer = cmp.BaselineLen > 0
		return cmp, nil
	}
	cmp.Richer = float64(cmp.BaselineLen) > float64(cmp.EngineLen)*compareThreshold
	return cmp, nil
}
