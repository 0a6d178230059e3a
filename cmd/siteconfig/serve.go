package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/siteconfig"
	"github.com/eringen/siteconfig/internal/log"
	"github.com/eringen/siteconfig/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		cfg    server.Config
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site configuration read-only over HTTP",
		Long: `Serve the configuration as /config.json, /config.yaml and /config.js.

With --db the latest saved revision is served instead of the --config file.
The record is loaded once at start; restart to pick up changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := loadServed(opts, dbPath)
			if err != nil {
				return err
			}
			app, err := server.New(site, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- app.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger := log.WithComponent("server")
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", siteconfig.EnvOr("SITE_ADDR", ":3000"), "listen address")
	cmd.Flags().StringSliceVar(&cfg.AllowOrigins, "allow-origin", nil, "CORS origins (default *)")
	cmd.Flags().Float64Var(&cfg.RateLimit, "rate", 10, "requests per second per client IP")
	cmd.Flags().IntVar(&cfg.Burst, "burst", 20, "burst size per client IP")
	cmd.Flags().DurationVar(&cfg.CacheMaxAge, "max-age", time.Hour, "Cache-Control max-age for config documents")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", "", "prefix for /permalink URLs (default first navigation URL)")
	cmd.Flags().StringVar(&dbPath, "db", "", "serve the latest revision from this SQLite database")
	return cmd
}

func loadServed(opts *rootOptions, dbPath string) (siteconfig.SiteConfig, error) {
	if dbPath == "" {
		return opts.load()
	}
	store, err := siteconfig.NewStore(dbPath)
	if err != nil {
		return siteconfig.SiteConfig{}, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	rev, err := store.Latest()
	if err != nil {
		return siteconfig.SiteConfig{}, fmt.Errorf("latest revision: %w", err)
	}
	logger := log.WithComponent("config")
	logger.Info().Int64("revision", rev.ID).Str("source", "store").Msg("loaded site config")
	return rev.Config, nil
}
