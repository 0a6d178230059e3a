package siteconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/eringen/siteconfig/internal/log"
)

// Loader resolves the site configuration with precedence ENV > file > default.
type Loader struct {
	path   string
	lookup func(string) (string, bool)
	logger zerolog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookup replaces os.LookupEnv, mainly for tests.
func WithLookup(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookup = fn
	}
}

// WithLogger sets the logger used to report where values came from.
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for path. An empty path selects the built-in
// default record.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:   path,
		lookup: os.LookupEnv,
		logger: log.WithComponent("config"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file (or default), applies environment overrides and
// validates the result.
func (l *Loader) Load() (SiteConfig, error) {
	var cfg SiteConfig
	if l.path == "" {
		cfg = Default()
		l.logger.Debug().Str("source", "default").Msg("using built-in site config")
	} else {
		fileCfg, err := l.loadFile(l.path)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("load config file: %w", err)
		}
		cfg = fileCfg
	}

	if err := ApplyEnv(&cfg, l.lookup, l.logger); err != nil {
		return SiteConfig{}, err
	}

	if err := Validate(cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(path string) (SiteConfig, error) {
	path = filepath.Clean(path)
	f, err := FormatFromPath(path)
	if err != nil {
		return SiteConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read file: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return SiteConfig{}, err
	}
	l.logger.Debug().
		Str("source", "file").
		Str("path", path).
		Str("format", string(f)).
		Msg("loaded site config")
	return cfg, nil
}

// LoadFile loads and validates path with environment overrides applied.
func LoadFile(path string) (SiteConfig, error) {
	return NewLoader(path).Load()
}
