package siteconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func newTestLoader(path string, env map[string]string) *Loader {
	return NewLoader(path, WithLookup(envMap(env)), WithLogger(zerolog.Nop()))
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderDefault(t *testing.T) {
	cfg, err := newTestLoader("", nil).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderFileFormats(t *testing.T) {
	yamlSrc := `title: JASON Format
description: Practical JavaScript and the occasional accidental module.
logo: https://i.imgur.com/5NZs32D.png
navigation:
  - label: Home
    url: https://jasonformat.com/
  - label: Preact
    url: https://jasonformat.com/tag/preact/
  - label: Architecture
    url: https://jasonformat.com/tag/architecture/
  - label: Ecosystem
    url: https://jasonformat.com/tag/ecosystem/
  - label: DOM
    url: https://jasonformat.com/tag/dom/
permalinks: /:slug/
cover: https://farm3.staticflickr.com/2903/14642847567_eeef81964e_k_d.jpg
postsPerPage: 5
`
	jsonSrc, err := Marshal(Default(), FormatJSON)
	require.NoError(t, err)

	files := map[string]string{
		"site.yaml": yamlSrc,
		"site.json": string(jsonSrc),
		"config.js": configModule,
	}
	for name, src := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := newTestLoader(writeTemp(t, name, src), nil).Load()
			require.NoError(t, err)
			if diff := cmp.Diff(Default(), cfg); diff != "" {
				t.Fatalf("loaded config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoaderEnvOverridesFile(t *testing.T) {
	path := writeTemp(t, "site.yaml", "title: From File\npermalinks: /:slug/\npostsPerPage: 3\n")
	cfg, err := newTestLoader(path, map[string]string{
		EnvTitle:        "From Env",
		EnvPostsPerPage: "12",
		EnvDescription:  "",
	}).Load()
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
	assert.Equal(t, 12, cfg.PostsPerPage)
	assert.Equal(t, "", cfg.Description)
}

func TestLoaderInvalidFile(t *testing.T) {
	path := writeTemp(t, "site.yaml", "title: x\npermalinks: /posts/\npostsPerPage: 0\n")
	_, err := newTestLoader(path, nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := newTestLoader(filepath.Join(t.TempDir(), "missing.yaml"), nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoaderUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "site.toml", `title = "x"`)
	_, err := newTestLoader(path, nil).Load()
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
