package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docparse"
)

// Ensure LoggingRegistry implements docparse.ProfileRegistry.
var _ docparse.ProfileRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ProfileRegistry with debug logging for profile
// detection.
type LoggingRegistry struct {
	next   docparse.ProfileRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next docparse.ProfileRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(p *docparse.Profile) error {
	return r.next.Register(p)
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(name string) (*docparse.Profile, error) {
	return r.next.Get(name)
}

// Profiles delegates to the wrapped registry.
func (r *LoggingRegistry) Profiles() []*docparse.Profile {
	return r.next.Profiles()
}

// Detect runs detection, logs the chosen profile, and returns it.
func (r *LoggingRegistry) Detect(pageURL, html string) *docparse.Profile {
	begin := time.Now()
	profile := r.next.Detect(pageURL, html)
	r.logger.Info("profile detection",
		"url", pageURL,
		"profile", profile.Name,
		"duration", time.Since(begin),
	)
	return profile
}
