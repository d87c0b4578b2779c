package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docparse"
)

var _ docparse.ProfileRegistry = (*Registry)(nil)

// Registry holds extraction profiles and selects one for a URL/page pair.
//
// Detection is tiered: hostname substrings are checked for every profile
// first, then URL patterns, then the page's generator meta tag. Each tier
// scans profiles in registration order, so registration order breaks ties
// only within a tier; a hostname match on any profile beats a URL-pattern
// match on any other. The fallback profile is the terminal choice and is
// never matched by identity rules.
//
// Register all profiles at startup. Detect and Get are safe for concurrent
// use once registration is done.
type Registry struct {
	fallback *docparse.Profile
	profiles []*docparse.Profile
	byName   map[string]*docparse.Profile
	patterns map[string][]*regexp.Regexp
}

// NewRegistry creates a Registry with the given fallback profile.
// The fallback is retrievable by name but excluded from detection tiers.
func NewRegistry(fallback *docparse.Profile) *Registry {
	return &Registry{
		fallback: fallback,
		byName:   map[string]*docparse.Profile{fallback.Name: fallback},
		patterns: make(map[string][]*regexp.Regexp),
	}
}

// NewBuiltinRegistry creates a Registry loaded with the built-in platform
// profiles and the generic fallback.
func NewBuiltinRegistry() *Registry {
	// Built-in profiles validate by construction.
	r, _ := NewCustomRegistry(nil)
	return r
}

// NewCustomRegistry creates a builtin registry with the given custom
// profiles registered ahead of the built-ins, so a custom profile wins
// ties against a built-in within the same detection tier. Custom profiles
// cannot reuse a built-in name.
func NewCustomRegistry(custom []*docparse.Profile) (*Registry, error) {
	builtins := docparse.BuiltinProfiles()
	r := NewRegistry(builtins[len(builtins)-1])
	for _, p := range custom {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	for _, p := range builtins[:len(builtins)-1] {
		if err := r.Register(p); err != nil {
			return nil, docparse.Errorf(docparse.ECONFLICT, "custom profile %q conflicts with a built-in profile", p.Name)
		}
	}
	return r, nil
}

// Register adds a profile keyed by its unique name.
func (r *Registry) Register(p *docparse.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := r.byName[p.Name]; ok {
		return docparse.Errorf(docparse.ECONFLICT, "profile %q already registered", p.Name)
	}

	compiled := make([]*regexp.Regexp, 0, len(p.URLPatterns))
	for _, pattern := range p.URLPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return docparse.Errorf(docparse.EINVALID, "profile %q has invalid URL pattern %q", p.Name, pattern)
		}
		compiled = append(compiled, re)
	}

	r.byName[p.Name] = p
	r.profiles = append(r.profiles, p)
	r.patterns[p.Name] = compiled
	return nil
}

// Get returns the profile with the given name.
func (r *Registry) Get(name string) (*docparse.Profile, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, docparse.Errorf(docparse.ENOTFOUND, "profile %q not found", name)
	}
	return p, nil
}

// Profiles returns the registered profiles in registration order, ending
// with the fallback.
func (r *Registry) Profiles() []*docparse.Profile {
	out := make([]*docparse.Profile, 0, len(r.profiles)+1)
	out = append(out, r.profiles...)
	out = append(out, r.fallback)
	return out
}

// Detect returns the best-fit profile for the URL and page HTML.
// Pass empty html for URL-only detection. Never returns nil.
func (r *Registry) Detect(pageURL, html string) *docparse.Profile {
	var doc *goquery.Document
	if html != "" {
		// An unparseable page degrades to URL-only detection.
		if d, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			doc = d
		}
	}
	return r.detect(pageURL, doc)
}

// detect runs the tiered match against an already-parsed document.
// doc may be nil for URL-only detection.
func (r *Registry) detect(pageURL string, doc *goquery.Document) *docparse.Profile {
	if host := hostOf(pageURL); host != "" {
		for _, p := range r.profiles {
			if matchesHost(p, host) {
				return p
			}
		}
	}

	for _, p := range r.profiles {
		if matchesAnyPattern(r.patterns[p.Name], pageURL) {
			return p
		}
	}

	if doc != nil {
		if generator := strings.ToLower(metaContent(doc, "meta[name='generator']")); generator != "" {
			for _, p := range r.profiles {
				if matchesGenerator(p, generator) {
					return p
				}
			}
		}
	}

	return r.fallback
}

// hostOf returns the lowercased host component of a URL, or empty if the
// URL does not parse.
func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

func matchesHost(p *docparse.Profile, host string) bool {
	for _, h := range p.Hostnames {
		if strings.Contains(host, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func matchesAnyPattern(patterns []*regexp.Regexp, pageURL string) bool {
	for _, re := range patterns {
		if re.MatchString(pageURL) {
			return true
		}
	}
	return false
}

// matchesGenerator expects an already-lowercased generator value.
func matchesGenerator(p *docparse.Profile, generator string) bool {
	for _, g := range p.Generators {
		if strings.Contains(generator, strings.ToLower(g)) {
			return true
		}
	}
	return false
}
