// Package config provides typed settings for wiring up an ifacereg
// registry: logging, metrics, and the membership journal.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/randalmurphal/ifacereg/pkg/ifacereg"
	"github.com/randalmurphal/ifacereg/pkg/ifacereg/journal"
	"github.com/randalmurphal/ifacereg/pkg/ifacereg/observability"
)

// Settings configures a registry's ambient concerns.
type Settings struct {
	// Logging configures structured logging.
	Logging LoggingSettings `yaml:"logging" json:"logging"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Journal configures the membership journal.
	Journal JournalSettings `yaml:"journal" json:"journal"`
}

// LoggingSettings configures the slog logger built by Logger().
type LoggingSettings struct {
	// Enabled turns logging on.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Level is one of "debug", "info", "warn", "error". Default: "info".
	Level string `yaml:"level" json:"level"`

	// Format is "text" or "json". Default: "text".
	Format string `yaml:"format" json:"format"`
}

// JournalSettings configures the membership journal built by OpenJournal().
type JournalSettings struct {
	// Driver is "" (no journal), "memory", or "sqlite".
	Driver string `yaml:"driver" json:"driver"`

	// Path is the SQLite database path. Required for the sqlite driver.
	Path string `yaml:"path" json:"path"`
}

// Default returns the default settings: no logging, no metrics, no journal.
func Default() Settings {
	return Settings{
		Logging: LoggingSettings{Level: "info", Format: "text"},
	}
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	switch s.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", s.Logging.Format)
	}
	switch s.Journal.Driver {
	case "", "memory":
	case "sqlite":
		if s.Journal.Path == "" {
			return fmt.Errorf("journal driver %q requires a path", s.Journal.Driver)
		}
	default:
		return fmt.Errorf("invalid journal driver: %q", s.Journal.Driver)
	}
	return nil
}

// Logger builds the configured slog logger, writing to stderr.
// Returns nil when logging is disabled.
func (s Settings) Logger() *slog.Logger {
	if !s.Logging.Enabled {
		return nil
	}

	var level slog.Level
	switch s.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if s.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// OpenJournal builds the configured journal store.
// Returns (nil, nil) when no journal is configured.
func (s Settings) OpenJournal() (journal.Store, error) {
	switch s.Journal.Driver {
	case "":
		return nil, nil
	case "memory":
		return journal.NewMemoryStore(), nil
	case "sqlite":
		return journal.NewSQLiteStore(s.Journal.Path)
	default:
		return nil, fmt.Errorf("invalid journal driver: %q", s.Journal.Driver)
	}
}

// Options assembles registry options from the settings. The returned close
// function releases the journal store, if one was opened, and is always
// safe to call.
func (s Settings) Options() ([]ifacereg.Option, func() error, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	var opts []ifacereg.Option
	if logger := s.Logger(); logger != nil {
		opts = append(opts, ifacereg.WithLogger(logger))
	}
	if s.Metrics {
		opts = append(opts, ifacereg.WithMetrics(observability.NewMetricsRecorder()))
	}

	store, err := s.OpenJournal()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error { return nil }
	if store != nil {
		opts = append(opts, ifacereg.WithJournal(store))
		closeFn = store.Close
	}
	return opts, closeFn, nil
}
