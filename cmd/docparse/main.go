package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
	"github.com/fwojciec/docparse/goquery"
	dochttp "github.com/fwojciec/docparse/http"
	"github.com/fwojciec/docparse/readability"
	docslog "github.com/fwojciec/docparse/slog"
	"github.com/fwojciec/docparse/sqlite"
	"github.com/fwojciec/docparse/trafilatura"
	"github.com/fwojciec/docparse/yaml"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A single interrupt cancels the crawl; partial results are still
	// exported before the process exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// RunService for end-to-end testing.
	RunService docparse.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docparse"),
		kong.Description("Extract documentation site content into portable formats"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docparse --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := setupLogger(cli.Verbose, stderr)

	// Load the configuration file for commands that read crawl settings
	// or custom profiles from it.
	if cmd == "crawl" || cmd == "detect" || cmd == "profiles" || cmd == "compare" {
		deps.Config, err = loadConfig(cli.Config)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Run 'docparse init' to write a starter config\n")
			return err
		}

		registry, err := goquery.NewCustomRegistry(deps.Config.Profiles)
		if err != nil {
			return fmt.Errorf("invalid profile in config file: %w", err)
		}
		deps.Registry = docslog.NewLoggingRegistry(registry, logger)
		deps.Extractor = goquery.NewExtractor(registry)
	}

	// Wire the fetcher for commands that hit the network.
	if cmd == "crawl" || cmd == "detect" || cmd == "compare" {
		ua := docparse.DefaultUserAgent
		if deps.Config.Crawl.UserAgent != nil {
			ua = *deps.Config.Crawl.UserAgent
		}
		fetcher := dochttp.NewFetcher(dochttp.WithUserAgent(ua))
		defer fetcher.Close()
		deps.Fetcher = docslog.NewLoggingFetcher(fetcher, logger)
		deps.Sitemaps = docslog.NewLoggingSitemapService(dochttp.NewSitemapService(nil), logger)
	}

	// Open the run database only for commands that use it.
	if cmd == "runs" || cmd == "show" || cmd == "delete" || (cmd == "crawl" && cli.Crawl.SaveDB) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCPARSE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	if cmd == "crawl" {
		deps.Crawler = &crawl.Crawler{
			Fetcher:   deps.Fetcher,
			Extractor: deps.Extractor,
		}
	}

	if cmd == "compare" {
		switch cli.Compare.Engine {
		case "readability":
			deps.Baseline = readability.NewExtractor()
		default:
			deps.Baseline = trafilatura.NewExtractor()
		}
	}

	return kongCtx.Run(deps)
}

// setupLogger builds the CLI logger. Service decorators log at Info, so
// the default Warn level keeps normal runs quiet.
func setupLogger(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the configuration file. An explicitly given path must
// exist; the default locations are optional.
func loadConfig(path string) (*yaml.File, error) {
	if path == "" {
		found := yaml.FindConfigFile("")
		if found == "" {
			return &yaml.File{}, nil
		}
		path = found
	}
	file, err := yaml.Load(path)
	if err != nil {
		if errors.Is(err, yaml.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %q not found", path)
		}
		return nil, err
	}
	return file, nil
}

func defaultDBPath() string {
	if path := os.Getenv("DOCPARSE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docparse.db"
	}
	dir := filepath.Join(home, ".docparse")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docparse.db")
}
