package siteconfig

// SiteConfig is the static metadata record a site generator reads once at
// build start: branding, navigation, permalink pattern and page size.
type SiteConfig struct {
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	Logo         string    `json:"logo" yaml:"logo"`             // absolute URL
	Navigation   []NavItem `json:"navigation" yaml:"navigation"` // rendered left-to-right
	Permalinks   string    `json:"permalinks" yaml:"permalinks"` // e.g. "/:slug/"
	Cover        string    `json:"cover" yaml:"cover"`           // absolute URL
	PostsPerPage int       `json:"postsPerPage" yaml:"postsPerPage"`
}

// NavItem is a single navigation menu entry.
type NavItem struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Clone returns a deep copy so callers can never share the navigation slice.
func (c SiteConfig) Clone() SiteConfig {
	out := c
	if c.Navigation != nil {
		out.Navigation = make([]NavItem, len(c.Navigation))
		copy(out.Navigation, c.Navigation)
	}
	return out
}

// Permalink parses the configured permalink template.
func (c SiteConfig) Permalink() (Permalink, error) {
	return ParsePermalink(c.Permalinks)
}
