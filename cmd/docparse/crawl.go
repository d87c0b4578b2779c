package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
	"github.com/fwojciec/docparse/fs"
	"github.com/fwojciec/docparse/htmltomarkdown"
	"github.com/fwojciec/docparse/markdown"
	"github.com/fwojciec/docparse/sanitize"
	"github.com/fwojciec/docparse/yaml"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	config := c.buildConfig(deps.Config)

	if c.Sitemap {
		deps.Crawler.Sitemaps = deps.Sitemaps
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s\n", event.URL)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %4d  %s\n", event.Completed, crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after the crawl completes
		}
	}

	run, crawlErr := deps.Crawler.Crawl(deps.Ctx, config, progress)
	if crawlErr != nil {
		if run == nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(crawlErr))
			return crawlErr
		}
		// Interrupted crawl: keep what was collected before the stop.
		fmt.Fprintf(deps.Stderr, "crawl interrupted: %v\n", crawlErr)
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d pages in %s (%d ok, %d failed, %d skipped, %s)\n",
		run.Stats.Fetched, run.Duration().Round(time.Millisecond),
		run.Stats.Succeeded, run.Stats.Failed, run.Stats.Skipped,
		crawl.FormatBytes(run.Stats.Bytes))

	// Exports and saves proceed even when the crawl context was canceled.
	ctx := context.WithoutCancel(deps.Ctx)

	sanitizer := sanitize.NewSanitizer()
	converter := htmltomarkdown.NewConverter()

	out := c.Out
	if out == "" {
		out = defaultOutput(c.Format)
	}
	exporter := c.exporter(out, sanitizer, converter)
	if err := exporter.Export(ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", c.Format, out)

	if c.SaveDB {
		if err := deps.Runs.CreateRun(ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving run: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved run %s\n", run.ID)
	}

	if c.Report != "" {
		if err := writeReport(c.Report, run, sanitizer, converter); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing report: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote report to %s\n", c.Report)
	}

	return crawlErr
}

// buildConfig merges the three configuration layers: built-in defaults,
// then the configuration file, then explicitly set flags.
func (c *CrawlCmd) buildConfig(file *yaml.File) docparse.CrawlConfig {
	config := docparse.DefaultCrawlConfig()
	if file != nil {
		file.ApplyCrawl(&config)
	}

	config.StartURL = c.URL
	if c.Depth != nil {
		config.MaxDepth = *c.Depth
	}
	if c.Delay != nil {
		config.Delay = *c.Delay
	}
	if c.Timeout != nil {
		config.Timeout = *c.Timeout
	}
	if c.Retries != nil {
		config.Retries = *c.Retries
	}
	if c.Workers != nil {
		config.Workers = *c.Workers
	}
	if c.Include != nil {
		config.Include = *c.Include
	}
	if c.Exclude != nil {
		config.Exclude = *c.Exclude
	}
	if c.NoFollow {
		config.FollowLinks = false
	}
	return config
}

// defaultOutput returns the output path used when --out is not given.
func defaultOutput(format string) string {
	switch format {
	case "json":
		return "run.json"
	case "csv":
		return "csv"
	case "bundle":
		return "docs.md"
	default:
		return "docs"
	}
}

// exporter builds the exporter selected by --format.
func (c *CrawlCmd) exporter(out string, sanitizer docparse.Sanitizer, converter docparse.Converter) docparse.Exporter {
	switch c.Format {
	case "json":
		return fs.NewJSONExporter(out)
	case "csv":
		return fs.NewCSVExporter(out)
	case "bundle":
		return fs.NewBundleExporter(out, sanitizer, converter)
	default:
		return fs.NewMarkdownExporter(out, sanitizer, converter)
	}
}

// writeReport renders the run as a markdown report at path.
func writeReport(path string, run *docparse.Run, sanitizer docparse.Sanitizer, converter docparse.Converter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := markdown.NewReportWriter(f, sanitizer, converter).Write(run); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
