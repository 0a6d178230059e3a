package siteconfig

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Tokens a permalink template may contain.
const (
	TokenSlug       = "slug"
	TokenID         = "id"
	TokenYear       = "year"
	TokenMonth      = "month"
	TokenDay        = "day"
	TokenAuthor     = "author"
	TokenPrimaryTag = "primary_tag"
)

var knownTokens = map[string]struct{}{
	TokenSlug:       {},
	TokenID:         {},
	TokenYear:       {},
	TokenMonth:      {},
	TokenDay:        {},
	TokenAuthor:     {},
	TokenPrimaryTag: {},
}

// Permalink is a parsed URL path template such as "/:year/:slug/".
type Permalink struct {
	raw   string
	parts []permalinkPart
}

type permalinkPart struct {
	literal string
	token   string
}

// ParsePermalink parses a template. It must start and end with /, every
// token must fill a whole path segment, only known tokens may appear, and
// :slug must appear exactly once.
func ParsePermalink(s string) (Permalink, error) {
	if s == "" {
		return Permalink{}, fmt.Errorf("must not be empty")
	}
	if !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return Permalink{}, fmt.Errorf("template %q must start and end with /", s)
	}

	p := Permalink{raw: s, parts: []permalinkPart{{literal: "/"}}}
	seen := make(map[string]bool)
	if s != "/" {
		for _, seg := range strings.Split(s[1:len(s)-1], "/") {
			if seg == "" {
				return Permalink{}, fmt.Errorf("template %q has an empty path segment", s)
			}
			if !strings.HasPrefix(seg, ":") {
				if strings.Contains(seg, ":") {
					return Permalink{}, fmt.Errorf("template %q: token in %q must fill the whole segment", s, seg)
				}
				p.parts = append(p.parts, permalinkPart{literal: seg + "/"})
				continue
			}
			name := seg[1:]
			if name == "" {
				return Permalink{}, fmt.Errorf("template %q has an empty token", s)
			}
			if !validTokenName(name) {
				return Permalink{}, fmt.Errorf("template %q: token in %q must fill the whole segment", s, seg)
			}
			if _, ok := knownTokens[name]; !ok {
				return Permalink{}, fmt.Errorf("template %q uses unknown token :%s", s, name)
			}
			if seen[name] {
				return Permalink{}, fmt.Errorf("template %q repeats token :%s", s, name)
			}
			seen[name] = true
			p.parts = append(p.parts, permalinkPart{token: name}, permalinkPart{literal: "/"})
		}
	}
	if !seen[TokenSlug] {
		return Permalink{}, fmt.Errorf("template %q must contain :%s", s, TokenSlug)
	}
	return p, nil
}

func validTokenName(s string) bool {
	for i := 0; i < len(s); i++ {
		r := s[i]
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}

// String returns the template as written.
func (p Permalink) String() string {
	return p.raw
}

// Tokens returns the token names in template order.
func (p Permalink) Tokens() []string {
	var out []string
	for _, part := range p.parts {
		if part.token != "" {
			out = append(out, part.token)
		}
	}
	return out
}

// Expand substitutes every token with its path-escaped value from vars.
func (p Permalink) Expand(vars map[string]string) (string, error) {
	var b strings.Builder
	for _, part := range p.parts {
		if part.token == "" {
			b.WriteString(part.literal)
			continue
		}
		v, ok := vars[part.token]
		if !ok || v == "" {
			return "", fmt.Errorf("permalink %q: missing value for :%s", p.raw, part.token)
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}

// ExpandSlug expands a template whose only token is :slug.
func (p Permalink) ExpandSlug(slug string) (string, error) {
	return p.Expand(map[string]string{TokenSlug: slug})
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with an expanded permalink path, keeping a
// trailing slash when the path has one.
func BuildURL(base, p string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	pu, err := url.Parse(p)
	if err != nil {
		return base
	}
	joined := path.Join("/", u.Path, pu.Path)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	u.Path = joined
	return u.String()
}
