package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eringen/siteconfig"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the loaded site configuration",
		Example: `siteconfig show --config public/config.js --format json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := siteconfig.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return siteconfig.Encode(cmd.OutOrStdout(), cfg, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format ("+formatNames()+")")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the site configuration and list every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg, err := opts.load()
			if err != nil {
				var verr *siteconfig.ValidationError
				if errors.As(err, &verr) {
					red := color.New(color.FgHiRed).SprintFunc()
					for _, p := range verr.Problems {
						fmt.Fprintf(out, "%s %s\n", red("✗"), p)
					}
				}
				return err
			}
			green := color.New(color.FgHiGreen).SprintFunc()
			fmt.Fprintf(out, "%s %q is valid (%d navigation items, %d posts per page)\n",
				green("✓"), cfg.Title, len(cfg.Navigation), cfg.PostsPerPage)
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Write the site configuration to a file atomically",
		Example: `siteconfig export --config site.yaml --out public/config.js`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				f   siteconfig.Format
				err error
			)
			if format != "" {
				f, err = siteconfig.ParseFormat(format)
			} else {
				f, err = siteconfig.FormatFromPath(out)
			}
			if err != nil {
				return err
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := siteconfig.WriteFile(out, cfg, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", out, f)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format, default from the --out extension ("+formatNames()+")")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newPermalinkCmd(opts *rootOptions) *cobra.Command {
	var (
		slugify bool
		base    string
	)
	cmd := &cobra.Command{
		Use:     "permalink <slug>",
		Short:   "Expand the permalink template for a slug",
		Example: `siteconfig permalink --slugify "Designing Web Workers"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			p, err := cfg.Permalink()
			if err != nil {
				return err
			}
			slug := args[0]
			if slugify {
				slug = siteconfig.Slugify(slug)
			}
			path, err := p.ExpandSlug(slug)
			if err != nil {
				return err
			}
			if base != "" {
				path = siteconfig.BuildURL(base, path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&slugify, "slugify", false, "turn the argument into a slug first")
	cmd.Flags().StringVar(&base, "base", "", "print an absolute URL under this base")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Save the loaded site configuration as a new revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			store, err := siteconfig.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			rev, err := store.Save(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved revision %d\n", rev.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", siteconfig.EnvOr("SITE_DATABASE_PATH", "data/site.db"), "SQLite database path")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := siteconfig.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			revs, err := store.List()
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Revision", "Created", "Title", "Navigation", "Permalinks", "Posts/Page")
			for _, rev := range revs {
				if err := table.Append(
					strconv.FormatInt(rev.ID, 10),
					rev.CreatedAt.Format("2006-01-02 15:04:05"),
					rev.Config.Title,
					strconv.Itoa(len(rev.Config.Navigation)),
					rev.Config.Permalinks,
					strconv.Itoa(rev.Config.PostsPerPage),
				); err != nil {
					return fmt.Errorf("history table: %w", err)
				}
			}
			return table.Render()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", siteconfig.EnvOr("SITE_DATABASE_PATH", "data/site.db"), "SQLite database path")
	return cmd
}
