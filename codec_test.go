package siteconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configModule is the blog's original config module.
const configModule = `export default {
	title: 'JASON Format',
	description: 'Practical JavaScript and the occasional accidental module.',
	logo: 'https://i.imgur.com/5NZs32D.png',
	navigation: [
		{
			label: 'Home',
			url: 'https://jasonformat.com/'
		},
		{
			label: 'Preact',
			url: 'https://jasonformat.com/tag/preact/'
		},
		{
			label: 'Architecture',
			url: 'https://jasonformat.com/tag/architecture/'
		},
		{
			label: 'Ecosystem',
			url: 'https://jasonformat.com/tag/ecosystem/'
		},
		{
			label: 'DOM',
			url: 'https://jasonformat.com/tag/dom/'
		}
	],
	permalinks: '/:slug/',
	cover: 'https://farm3.staticflickr.com/2903/14642847567_eeef81964e_k_d.jpg',
	postsPerPage: 5
};
`

func TestDecodeJSModule(t *testing.T) {
	cfg, err := Decode(strings.NewReader(configModule), FormatJS)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("decoded module mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSModuleVariants(t *testing.T) {
	src := `// site settings
module.exports = {
	title: "It's \"quoted\"", /* inline */
	description: 'it\'s fine, really',
	navigation: [
		{ label: 'Home', url: 'https://example.com/' }, // trailing comma next
	],
	permalinks: '/:year/:slug/',
	postsPerPage: 10,
};`
	cfg, err := Decode(strings.NewReader(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, `It's "quoted"`, cfg.Title)
	assert.Equal(t, "it's fine, really", cfg.Description)
	assert.Equal(t, []NavItem{{Label: "Home", URL: "https://example.com/"}}, cfg.Navigation)
	assert.Equal(t, "/:year/:slug/", cfg.Permalinks)
	assert.Equal(t, 10, cfg.PostsPerPage)
}

func TestDecodeJSModuleErrors(t *testing.T) {
	cases := map[string]string{
		"no export":        `{ title: 'x' }`,
		"not an object":    `export default 'x';`,
		"template literal": "export default { title: `x` };",
		"unterminated":     `export default { title: 'x };`,
		"open comment":     `export default { /* title: 'x' };`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src), FormatJS)
			assert.Error(t, err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	want := Default()
	want.Description = `Quotes "double" & 'single' <tags>`
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(want, f)
			require.NoError(t, err)

			got, err := Decode(bytes.NewReader(data), f)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := Marshal(got, f)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestEncodeJSONFieldNames(t *testing.T) {
	data, err := Marshal(Default(), FormatJSON)
	require.NoError(t, err)
	for _, key := range []string{`"title"`, `"description"`, `"logo"`, `"navigation"`, `"label"`, `"url"`, `"permalinks"`, `"cover"`, `"postsPerPage"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestEncodeJSModule(t *testing.T) {
	data, err := Marshal(Default(), FormatJS)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "export default {"))
	assert.True(t, strings.HasSuffix(string(data), "};\n"))
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		src    string
	}{
		{"json", FormatJSON, `{"title": "x", "theme": "dark"}`},
		{"yaml", FormatYAML, "title: x\ntheme: dark\n"},
		{"js", FormatJS, `export default { title: 'x', theme: 'dark' };`},
		{"json case folded", FormatJSON, `{"title": "A", "postsperpage": 5}`},
		{"yaml case folded", FormatYAML, "title: A\npostsperpage: 5\n"},
		{"json nested", FormatJSON, `{"title": "A", "navigation": [{"Label": "Home", "url": "https://example.com/"}]}`},
		{"yaml nested", FormatYAML, "title: A\nnavigation:\n  - label: Home\n    href: https://example.com/\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(tc.src), tc.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownField), "got %v", err)
			assert.Zero(t, cfg.PostsPerPage)
		})
	}
}

func TestDecodeUnknownFieldNamesKey(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"title": "A", "postsperpage": 5}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postsperpage")

	_, err = Decode(strings.NewReader("navigation:\n  - label: Home\n    href: x\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation[0].href")
}

func TestDecodeRejectsTrailingContent(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"title": "a"} {"title": "b"}`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("title: a\n---\ntitle: b\n"), FormatYAML)
	assert.Error(t, err)
}

func TestDecodeEmptyYAML(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, SiteConfig{}, cfg)
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"site.json":        FormatJSON,
		"site.yaml":        FormatYAML,
		"conf/site.YML":    FormatYAML,
		"public/config.js": FormatJS,
		"config.mjs":       FormatJS,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"site.toml", "site"} {
		_, err := FormatFromPath(path)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), path)
	}
}

func TestWriteFileReplacesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteFile(path, Default(), FormatYAML))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := Decode(bytes.NewReader(data), FormatYAML)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("written file mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}
