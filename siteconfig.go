// Package siteconfig declares the static configuration of a blog: title,
// description, logo, navigation, permalink pattern, cover image and page
// size. The record is loaded once (from the built-in default, a JSON, YAML or
// JS module file, and SITE_* environment overrides), validated, and then only
// read by the site generator.
//
// Besides loading, the package can encode the record back to every format it
// reads, keep a revision history in SQLite, and expand permalink templates.
package siteconfig

import "os"

// defaultConfig mirrors the record the blog shipped with.
var defaultConfig = SiteConfig{
	Title:       "JASON Format",
	Description: "Practical JavaScript and the occasional accidental module.",
	Logo:        "https://i.imgur.com/5NZs32D.png",
	Navigation: []NavItem{
		{Label: "Home", URL: "https://jasonformat.com/"},
		{Label: "Preact", URL: "https://jasonformat.com/tag/preact/"},
		{Label: "Architecture", URL: "https://jasonformat.com/tag/architecture/"},
		{Label: "Ecosystem", URL: "https://jasonformat.com/tag/ecosystem/"},
		{Label: "DOM", URL: "https://jasonformat.com/tag/dom/"},
	},
	Permalinks:   "/:slug/",
	Cover:        "https://farm3.staticflickr.com/2903/14642847567_eeef81964e_k_d.jpg",
	PostsPerPage: 5,
}

// Default returns the built-in site configuration. Each call returns a fresh
// copy.
func Default() SiteConfig {
	return defaultConfig.Clone()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
