package scaffold

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/siteconfig"
)

func TestRenderProducesValidConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Data{
		Title:       `My "Blog"`,
		Description: "Notes: mostly Go.",
		SiteURL:     "https://example.com/",
	}))

	cfg, err := siteconfig.Decode(&buf, siteconfig.FormatYAML)
	require.NoError(t, err)
	require.NoError(t, siteconfig.Validate(cfg))

	assert.Equal(t, `My "Blog"`, cfg.Title)
	assert.Equal(t, "Notes: mostly Go.", cfg.Description)
	assert.Equal(t, "https://example.com/logo.png", cfg.Logo)
	assert.Equal(t, "https://example.com/cover.jpg", cfg.Cover)
	assert.Equal(t, []siteconfig.NavItem{{Label: "Home", URL: "https://example.com/"}}, cfg.Navigation)
	assert.Equal(t, "/:slug/", cfg.Permalinks)
	assert.Equal(t, 5, cfg.PostsPerPage)
}
