package siteconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables that override file values.
const (
	EnvTitle        = "SITE_TITLE"
	EnvDescription  = "SITE_DESCRIPTION"
	EnvLogo         = "SITE_LOGO"
	EnvCover        = "SITE_COVER"
	EnvPermalinks   = "SITE_PERMALINKS"
	EnvPostsPerPage = "SITE_POSTS_PER_PAGE"
	EnvNavigation   = "SITE_NAVIGATION" // "Label=URL;Label=URL"
)

// ApplyEnv overrides fields of cfg from lookup. Empty variables are ignored.
// A malformed SITE_POSTS_PER_PAGE or SITE_NAVIGATION fails with
// ErrInvalidConfig rather than silently keeping the file value.
func ApplyEnv(cfg *SiteConfig, lookup func(string) (string, bool), logger zerolog.Logger) error {
	str := func(key string, dst *string) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		logger.Debug().
			Str("key", key).
			Str("value", v).
			Str("source", "environment").
			Msg("using environment variable")
		*dst = v
	}
	str(EnvTitle, &cfg.Title)
	str(EnvDescription, &cfg.Description)
	str(EnvLogo, &cfg.Logo)
	str(EnvCover, &cfg.Cover)
	str(EnvPermalinks, &cfg.Permalinks)

	if v, ok := lookup(EnvPostsPerPage); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvPostsPerPage, v)
		}
		logger.Debug().
			Str("key", EnvPostsPerPage).
			Int("value", n).
			Str("source", "environment").
			Msg("using environment variable")
		cfg.PostsPerPage = n
	}

	if v, ok := lookup(EnvNavigation); ok && v != "" {
		nav, err := ParseNavigation(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvNavigation, err)
		}
		logger.Debug().
			Str("key", EnvNavigation).
			Int("items", len(nav)).
			Str("source", "environment").
			Msg("using environment variable")
		cfg.Navigation = nav
	}
	return nil
}

// ParseNavigation parses "Label=URL;Label=URL" keeping declaration order.
func ParseNavigation(s string) ([]NavItem, error) {
	var nav []NavItem
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, u, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q is not Label=URL", entry)
		}
		nav = append(nav, NavItem{Label: strings.TrimSpace(label), URL: strings.TrimSpace(u)})
	}
	if len(nav) == 0 {
		return nil, fmt.Errorf("no entries in %q", s)
	}
	return nav, nil
}
