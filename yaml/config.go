// Package yaml loads crawl configuration and custom extraction profiles
// from YAML files.
package yaml

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/docparse"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".docparse.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration wraps time.Duration so config files can write values like
// "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// CrawlSection holds crawl option overrides. Pointer fields distinguish an
// absent option from an explicit zero.
type CrawlSection struct {
	MaxDepth    *int      `yaml:"max_depth,omitempty"`
	Delay       *Duration `yaml:"delay,omitempty"`
	Timeout     *Duration `yaml:"timeout,omitempty"`
	Retries     *int      `yaml:"retries,omitempty"`
	Include     *string   `yaml:"include,omitempty"`
	Exclude     *string   `yaml:"exclude,omitempty"`
	FollowLinks *bool     `yaml:"follow_links,omitempty"`
	SaveAssets  *bool     `yaml:"save_assets,omitempty"`
	Workers     *int      `yaml:"workers,omitempty"`
	UserAgent   *string   `yaml:"user_agent,omitempty"`
}

// File represents the structure of a docparse configuration file.
type File struct {
	// Crawl presets crawl options. Command-line flags still win.
	Crawl CrawlSection `yaml:"crawl,omitempty"`

	// Profiles are custom extraction profiles registered ahead of the
	// built-in ones.
	Profiles []*docparse.Profile `yaml:"profiles,omitempty"`
}

// ApplyCrawl overlays the file's crawl settings onto cfg. Only options
// present in the file are changed.
func (f *File) ApplyCrawl(cfg *docparse.CrawlConfig) {
	c := f.Crawl
	if c.MaxDepth != nil {
		cfg.MaxDepth = *c.MaxDepth
	}
	if c.Delay != nil {
		cfg.Delay = time.Duration(*c.Delay)
	}
	if c.Timeout != nil {
		cfg.Timeout = time.Duration(*c.Timeout)
	}
	if c.Retries != nil {
		cfg.Retries = *c.Retries
	}
	if c.Include != nil {
		cfg.Include = *c.Include
	}
	if c.Exclude != nil {
		cfg.Exclude = *c.Exclude
	}
	if c.FollowLinks != nil {
		cfg.FollowLinks = *c.FollowLinks
	}
	if c.SaveAssets != nil {
		cfg.SaveAssets = *c.SaveAssets
	}
	if c.Workers != nil {
		cfg.Workers = *c.Workers
	}
	if c.UserAgent != nil {
		cfg.UserAgent = *c.UserAgent
	}
}

// Load reads a config file. It returns ErrConfigNotFound when the file does
// not exist, so callers can decide whether a missing file matters.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, docparse.Errorf(docparse.EINVALID, "invalid config file %s: %v", path, err)
	}

	// File-defined profiles are selector-driven unless stated otherwise.
	for _, p := range f.Profiles {
		if p.Strategy == "" {
			p.Strategy = docparse.StrategySelectors
		}
	}

	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .docparse.yaml in the current directory
// 3. Look for .docparse.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// starterConfig is written by WriteDefault as a documented starting point.
const starterConfig = `# docparse configuration file.
# Values here override built-in defaults; command-line flags override both.

# crawl:
#   max_depth: 3
#   delay: 500ms
#   timeout: 30s
#   retries: 3
#   workers: 1
#   include: ""
#   exclude: ""
#   follow_links: true
#   save_assets: false
#   user_agent: docparse/1.0

# Custom extraction profiles, tried before the built-in ones.
# profiles:
#   - name: example-docs
#     hostnames:
#       - docs.example.com
#     content_selectors:
#       - main .doc-content
#     nav_selectors:
#       - aside.sidebar nav
#     ignore_selectors:
#       - .edit-this-page
`

// WriteDefault writes a documented starter config to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return docparse.Errorf(docparse.ECONFLICT, "config file %s already exists", path)
		}
		return err
	}

	if _, err := f.WriteString(starterConfig); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
