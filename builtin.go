package docparse

// BuiltinProfiles returns the built-in platform profiles in their canonical
// registration order, ending with the generic fallback. Callers register
// them into a fresh registry at startup; the slices are freshly allocated on
// every call so registries never share backing arrays.
func BuiltinProfiles() []*Profile {
	return []*Profile{
		GitBookProfile(),
		DocusaurusProfile(),
		MkDocsProfile(),
		ReadTheDocsProfile(),
		VuePressProfile(),
		HugoProfile(),
		DocsifyProfile(),
		NextJSProfile(),
		AIDocsProfile(),
		GenericProfile(),
	}
}

// GitBookProfile matches GitBook-hosted documentation.
func GitBookProfile() *Profile {
	return &Profile{
		Name:             "gitbook",
		Hostnames:        []string{"gitbook.io", "gitbook.com"},
		URLPatterns:      []string{`\.gitbook\.io`, `\.gitbook\.com`},
		Generators:       []string{"GitBook"},
		ContentSelectors: []string{".markdown-section", ".page-inner", "article", ".content"},
		NavSelectors:     []string{".book-summary", ".summary", "nav.book-summary"},
		IgnoreSelectors:  []string{".page-footer", ".markdown-section > div.gitbook-plugin"},
		Strategy:         StrategySelectors,
	}
}

// DocusaurusProfile matches Docusaurus sites.
func DocusaurusProfile() *Profile {
	return &Profile{
		Name:             "docusaurus",
		Hostnames:        []string{"docusaurus.io"},
		URLPatterns:      []string{`\.docusaurus\.io`},
		Generators:       []string{"Docusaurus"},
		ContentSelectors: []string{"article.docusaurus-content", ".markdown", "main article"},
		NavSelectors:     []string{".menu__list", "nav.menu", ".table-of-contents"},
		IgnoreSelectors:  []string{".theme-edit-this-page", ".theme-last-updated", ".docs-prevnext"},
		Strategy:         StrategySelectors,
	}
}

// MkDocsProfile matches MkDocs sites, including the Material theme.
func MkDocsProfile() *Profile {
	return &Profile{
		Name:             "mkdocs",
		Hostnames:        []string{"mkdocs.org"},
		URLPatterns:      []string{`\.readthedocs\.io`, `\.mkdocs\.org`},
		Generators:       []string{"MkDocs"},
		ContentSelectors: []string{".md-content__inner", "article.md-content__inner", "div.content"},
		NavSelectors:     []string{".md-sidebar__inner", ".md-sidebar--primary", "nav.md-nav"},
		IgnoreSelectors:  []string{".md-footer", ".md-footer-nav"},
		Strategy:         StrategySelectors,
	}
}

// ReadTheDocsProfile matches Read the Docs and other Sphinx-built sites.
func ReadTheDocsProfile() *Profile {
	return &Profile{
		Name:             "readthedocs",
		Hostnames:        []string{"readthedocs.io", "readthedocs.org"},
		URLPatterns:      []string{`\.readthedocs\.io`, `\.readthedocs\.org`},
		Generators:       []string{"Sphinx"},
		ContentSelectors: []string{".document", ".body", `div[role="main"]`, ".rst-content"},
		NavSelectors:     []string{".wy-nav-side", ".sphinxsidebar", "nav.wy-nav-side"},
		IgnoreSelectors:  []string{".rst-footer-buttons", ".sourcelink", ".headerlink", ".viewcode-link"},
		Strategy:         StrategySelectors,
	}
}

// VuePressProfile matches VuePress sites.
func VuePressProfile() *Profile {
	return &Profile{
		Name:             "vuepress",
		Hostnames:        []string{"vuepress.vuejs.org"},
		URLPatterns:      []string{`\.vuepress\.`},
		Generators:       []string{"VuePress"},
		ContentSelectors: []string{".theme-default-content", ".content", "main.page"},
		NavSelectors:     []string{".sidebar", ".sidebar-links", "aside.sidebar"},
		IgnoreSelectors:  []string{".page-edit", ".page-nav", ".edit-link", ".last-updated"},
		Strategy:         StrategySelectors,
	}
}

// HugoProfile matches Hugo-generated documentation.
func HugoProfile() *Profile {
	return &Profile{
		Name:             "hugo",
		Hostnames:        []string{"gohugo.io"},
		URLPatterns:      []string{`\.gohugo\.io`},
		Generators:       []string{"Hugo"},
		ContentSelectors: []string{".content", "main", "article.content"},
		NavSelectors:     []string{".menu", "nav.menu", ".sidebar"},
		IgnoreSelectors:  []string{".footer", "footer", ".edit-page"},
		Strategy:         StrategySelectors,
	}
}

// DocsifyProfile matches docsify sites.
func DocsifyProfile() *Profile {
	return &Profile{
		Name:             "docsify",
		Hostnames:        []string{"docsify.js.org"},
		URLPatterns:      []string{`\.docsify\.`},
		Generators:       []string{"docsify"},
		ContentSelectors: []string{".content", "#main", "section.content"},
		NavSelectors:     []string{".sidebar", ".sidebar-nav", "aside"},
		IgnoreSelectors:  []string{".docsify-pagination", ".edit-link"},
		Strategy:         StrategySelectors,
	}
}

// NextJSProfile matches Next.js documentation sites.
func NextJSProfile() *Profile {
	return &Profile{
		Name:             "nextjs",
		Hostnames:        []string{"nextjs.org"},
		URLPatterns:      []string{`\.nextjs\.org`},
		Generators:       []string{"Next.js"},
		ContentSelectors: []string{".docs-content", "main", "article", ".content"},
		NavSelectors:     []string{".sidebar", "nav", ".docs-sidebar"},
		IgnoreSelectors:  []string{".footer", "footer", ".edit-page-link"},
		Strategy:         StrategySelectors,
	}
}

// AIDocsProfile matches the documentation portals of the large AI vendors,
// which share a common docs layout.
func AIDocsProfile() *Profile {
	return &Profile{
		Name:             "ai-docs",
		Hostnames:        []string{"anthropic.com", "claude.ai", "openai.com"},
		URLPatterns:      []string{`\.anthropic\.com`, `\.claude\.ai`, `\.openai\.com`, `/docs`},
		ContentSelectors: []string{".content", "main", "article", ".documentation", ".docs-content"},
		NavSelectors:     []string{".sidebar", "nav", ".navigation", ".docs-navigation"},
		IgnoreSelectors:  []string{".footer", "footer", ".header", "header", ".feedback", ".edit-link"},
		Strategy:         StrategySelectors,
	}
}

// GenericProfile is the terminal fallback. It carries a broad selector set
// and falls back to heuristic scoring when no selector matches.
func GenericProfile() *Profile {
	return &Profile{
		Name: "generic",
		ContentSelectors: []string{
			"article", "main", ".content", ".markdown-body", ".markdown-section",
			".documentation", ".docs-content", ".post-content", ".entry-content",
			`div[role="main"]`, ".container main", "div.body", "#content",
		},
		NavSelectors: []string{
			".sidebar", ".table-of-contents", ".menu", "nav", ".navigation",
			"aside", ".toc", "#toc", ".nav-wrapper", "ul.summary",
			".sphinx-sidebar", "#sidebar",
		},
		IgnoreSelectors: []string{
			"footer", "header", ".admonition", ".github-fork-ribbon", ".edit-link",
			".feedback", ".page-footer", "script", "style", ".navigation",
			".page-nav", ".next-prev-links", ".disqus", "#disqus_thread",
			".comments", ".article-footer", ".sharing", ".related-posts",
		},
		Strategy: StrategyHeuristic,
	}
}
