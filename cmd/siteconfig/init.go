package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/siteconfig/scaffold"
)

func newInitCmd() *cobra.Command {
	var data scaffold.Data
	cmd := &cobra.Command{
		Use:     "init [dir]",
		Short:   "Write a starter site.yaml",
		Example: `siteconfig init myblog --url https://myblog.example/`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if data.Title == "" {
				data.Title = toTitle(filepath.Base(absOr(dir)))
			}
			if !strings.HasSuffix(data.SiteURL, "/") {
				data.SiteURL += "/"
			}
			path, err := runInit(dir, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.Title, "title", "", "site title (default derived from the directory name)")
	cmd.Flags().StringVar(&data.Description, "description", "", "site description")
	cmd.Flags().StringVar(&data.SiteURL, "url", "http://localhost:3000/", "canonical site URL")
	return cmd
}

func runInit(dir string, data scaffold.Data) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, scaffold.SiteFile)

	// O_EXCL: never overwrite an existing config.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s already exists", path)
		}
		return "", err
	}
	if err := scaffold.Render(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
