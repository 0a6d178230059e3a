package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/siteconfig"
	"github.com/eringen/siteconfig/internal/log"
)

// version is set at build time via ldflags.
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "siteconfig",
		Short: "Load, validate, export and serve a blog's site configuration",
		Long: `siteconfig manages the static configuration record of a blog: title,
description, logo, navigation, permalink pattern, cover image and page size.

Without --config the built-in record is used. SITE_* environment variables
override file values.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.Configure(log.Config{Level: opts.logLevel, Output: cmd.ErrOrStderr()})
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", siteconfig.EnvOr("SITE_CONFIG", ""), "config file (.json, .yaml, .yml, .js)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", siteconfig.EnvOr("LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newShowCmd(opts),
		newValidateCmd(opts),
		newExportCmd(opts),
		newPermalinkCmd(opts),
		newImportCmd(opts),
		newHistoryCmd(),
		newServeCmd(opts),
		newInitCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) load() (siteconfig.SiteConfig, error) {
	return siteconfig.NewLoader(o.configPath).Load()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the siteconfig version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "siteconfig %s\n", version)
		},
	}
}

func formatNames() string {
	names := make([]string, len(siteconfig.Formats))
	for i, f := range siteconfig.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
