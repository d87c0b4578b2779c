package docparse

import "regexp"

// Strategy selects how a profile extracts content and navigation.
type Strategy string

// Extraction strategies.
const (
	// StrategySelectors tries the profile's selector lists in priority
	// order and never falls back to heuristics.
	StrategySelectors Strategy = "selectors"

	// StrategyHeuristic tries the selector lists first, then scores
	// candidate containers by text volume and link shape. Used by the
	// generic fallback profile.
	StrategyHeuristic Strategy = "heuristic"
)

// Profile describes how to recognize and extract one documentation platform
// family. Identity rules (hostnames, URL patterns, generator metadata) drive
// detection; selector lists drive extraction. Profiles are immutable after
// registration and live for the process lifetime.
type Profile struct {
	// Name uniquely identifies the profile within a registry.
	Name string `json:"name" yaml:"name"`

	// Hostnames are substrings matched against the URL's host component.
	Hostnames []string `json:"hostnames,omitempty" yaml:"hostnames,omitempty"`

	// URLPatterns are regular expressions matched anywhere in the URL.
	URLPatterns []string `json:"urlPatterns,omitempty" yaml:"url_patterns,omitempty"`

	// Generators are substrings matched case-insensitively against the
	// page's generator meta tag.
	Generators []string `json:"generators,omitempty" yaml:"generators,omitempty"`

	// ContentSelectors locate the main content subtree, tried in order.
	ContentSelectors []string `json:"contentSelectors,omitempty" yaml:"content_selectors,omitempty"`

	// NavSelectors locate the navigation subtree, tried in order.
	NavSelectors []string `json:"navSelectors,omitempty" yaml:"nav_selectors,omitempty"`

	// IgnoreSelectors identify elements stripped from an extracted content
	// candidate (edit links, ad blocks, feedback widgets).
	IgnoreSelectors []string `json:"ignoreSelectors,omitempty" yaml:"ignore_selectors,omitempty"`

	// Strategy selects selector-driven or heuristic extraction.
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// Validate returns an error if the profile is malformed.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	switch p.Strategy {
	case StrategySelectors, StrategyHeuristic:
	default:
		return Errorf(EINVALID, "profile %q has unknown strategy %q", p.Name, p.Strategy)
	}
	for _, pattern := range p.URLPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return Errorf(EINVALID, "profile %q has invalid URL pattern %q", p.Name, pattern)
		}
	}
	return nil
}

// ProfileRegistry holds all known profiles and selects one for a URL/page
// pair. Exactly one fallback profile always exists and is the terminal
// choice when no other profile matches.
type ProfileRegistry interface {
	// Register adds a profile keyed by its unique name.
	// Returns ECONFLICT for duplicate names and EINVALID for malformed
	// profiles.
	Register(p *Profile) error

	// Get returns the profile with the given name.
	// Returns ENOTFOUND if no such profile is registered.
	Get(name string) (*Profile, error)

	// Profiles returns the registered profiles in registration order,
	// ending with the fallback.
	Profiles() []*Profile

	// Detect returns the best-fit profile for the URL and page HTML.
	// Hostname matches win over URL-pattern matches, which win over
	// generator-metadata matches; registration order breaks ties within a
	// tier only. Pass empty html for URL-only detection. Never nil.
	Detect(pageURL, html string) *Profile
}
