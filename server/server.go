// Package server exposes a loaded site configuration read-only over HTTP so
// generators and tooling that cannot read the file directly can fetch it as
// JSON, YAML or a JS module.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/eringen/siteconfig"
	"github.com/eringen/siteconfig/internal/log"
)

// Config holds the HTTP settings of the config server.
type Config struct {
	Addr         string        // Listen address (default ":3000")
	AllowOrigins []string      // CORS origins (default "*")
	RateLimit    float64       // Requests per second per client IP (default 10)
	Burst        int           // Burst size per client IP (default 20)
	CacheMaxAge  time.Duration // Cache-Control max-age for config documents (default 1h)
	BaseURL      string        // Prefix for expanded permalinks (default first navigation URL)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"*"}
	}
	if c.RateLimit == 0 {
		c.RateLimit = 10
	}
	if c.Burst == 0 {
		c.Burst = 20
	}
	if c.CacheMaxAge == 0 {
		c.CacheMaxAge = time.Hour
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithCustomRoutes registers additional routes on the Echo instance after
// the built-in ones.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// App serves one immutable site configuration.
type App struct {
	Config Config
	Echo   *echo.Echo

	site         siteconfig.SiteConfig
	permalink    siteconfig.Permalink
	docs         *documentCache
	limiter      *Limiter
	logger       zerolog.Logger
	customRoutes []func(*App)
}

// New validates site and wires middleware and routes. The returned App can
// be used as an http.Handler through its Echo field before Start is called.
func New(site siteconfig.SiteConfig, cfg Config, opts ...Option) (*App, error) {
	if err := siteconfig.Validate(site); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	permalink, err := site.Permalink()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	cfg.setDefaults()
	if cfg.BaseURL == "" && len(site.Navigation) > 0 {
		cfg.BaseURL = site.Navigation[0].URL
	}

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		site:      site.Clone(),
		permalink: permalink,
		logger:    log.WithComponent("server"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.docs = newDocumentCache(a.site)
	a.limiter = NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst, 10*time.Minute)

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Site returns a copy of the served configuration.
func (a *App) Site() siteconfig.SiteConfig {
	return a.site.Clone()
}

// Start listens on Config.Addr and blocks until the server stops.
func (a *App) Start() error {
	a.logger.Info().Str("addr", a.Config.Addr).Str("title", a.site.Title).Msg("serving site config")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and releases the limiter.
func (a *App) Shutdown(ctx context.Context) error {
	a.limiter.Stop()
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", a.handleHealth)
	e.GET("/config", a.handleConfig)
	e.GET("/config.json", a.handleFormat(siteconfig.FormatJSON))
	e.GET("/config.yaml", a.handleFormat(siteconfig.FormatYAML))
	e.GET("/config.js", a.handleFormat(siteconfig.FormatJS))
	e.GET("/permalink/:slug", a.handlePermalink)
}
