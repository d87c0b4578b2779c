package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
	"github.com/fwojciec/docparse/sqlite"
	"github.com/fwojciec/docparse/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DB       *sqlite.DB
	Runs     docparse.RunService
	Registry docparse.ProfileRegistry
	Sitemaps docparse.SitemapService
	Fetcher  docparse.Fetcher

	// Extractor is the profile-driven engine; Baseline is the reference
	// engine selected for the compare command.
	Extractor docparse.Extractor
	Baseline  docparse.Extractor

	Crawler *crawl.Crawler

	// Config is the loaded configuration file, empty when none was found.
	Config *yaml.File
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" help:"Path to a configuration file" placeholder:"PATH"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl a documentation site and export its content"`
	Detect   DetectCmd   `cmd:"" help:"Detect the documentation platform of a page"`
	Profiles ProfilesCmd `cmd:"" help:"List registered extraction profiles"`
	Compare  CompareCmd  `cmd:"" help:"Compare profile extraction against a baseline engine"`
	Runs     RunsCmd     `cmd:"" help:"List saved crawl runs"`
	Show     ShowCmd     `cmd:"" help:"Show a saved crawl run"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a saved crawl run"`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
}

// CrawlCmd is the "crawl" subcommand. Option flags are pointers so that
// unset flags fall through to the configuration file and the defaults.
type CrawlCmd struct {
	URL      string         `arg:"" help:"Documentation site URL"`
	Depth    *int           `short:"d" help:"Maximum link depth"`
	Delay    *time.Duration `help:"Delay between same-domain requests"`
	Timeout  *time.Duration `help:"Timeout per fetch attempt"`
	Retries  *int           `help:"Retry attempts for transient fetch failures"`
	Workers  *int           `short:"w" help:"Concurrent fetch workers"`
	Include  *string        `short:"i" help:"Only crawl URLs matching this regex"`
	Exclude  *string        `short:"x" help:"Skip URLs matching this regex"`
	NoFollow bool           `help:"Fetch the start URL only, without following links"`
	Sitemap  bool           `help:"Seed the crawl from the site's sitemap"`
	Format   string         `short:"f" default:"markdown" enum:"markdown,json,csv,bundle" help:"Export format"`
	Out      string         `short:"o" help:"Output path (defaults derived from format)"`
	SaveDB   bool           `name:"db" help:"Save the run to the run database"`
	Report   string         `help:"Write a markdown crawl report to this path" placeholder:"PATH"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	URL string `arg:"" help:"Page URL to probe"`
}

// ProfilesCmd is the "profiles" subcommand.
type ProfilesCmd struct{}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL    string `arg:"" help:"Page URL to compare"`
	Engine string `default:"trafilatura" enum:"trafilatura,readability" help:"Baseline extraction engine"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Path string `arg:"" optional:"" help:"Destination path (default .docparse.yaml)"`
}
