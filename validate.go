package siteconfig

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the record and returns a *ValidationError listing every
// problem, or nil. Description is free text and never checked. Logo and
// cover may be left empty; when set they must be absolute URLs.
func Validate(c SiteConfig) error {
	verr := &ValidationError{}

	if strings.TrimSpace(c.Title) == "" {
		verr.add("title", "must not be empty")
	}
	if c.Logo != "" {
		if err := checkAbsoluteURL(c.Logo); err != nil {
			verr.add("logo", err.Error())
		}
	}
	if c.Cover != "" {
		if err := checkAbsoluteURL(c.Cover); err != nil {
			verr.add("cover", err.Error())
		}
	}
	for i, item := range c.Navigation {
		field := fmt.Sprintf("navigation[%d]", i)
		if strings.TrimSpace(item.Label) == "" {
			verr.add(field+".label", "must not be empty")
		}
		if err := checkAbsoluteURL(item.URL); err != nil {
			verr.add(field+".url", err.Error())
		}
	}
	if _, err := ParsePermalink(c.Permalinks); err != nil {
		verr.add("permalinks", err.Error())
	}
	if c.PostsPerPage <= 0 {
		verr.add("postsPerPage", fmt.Sprintf("must be a positive integer, got %d", c.PostsPerPage))
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// checkAbsoluteURL accepts http(s) URLs with a host.
func checkAbsoluteURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
