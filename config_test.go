package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFields(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "JASON Format", cfg.Title)
	assert.Equal(t, "Practical JavaScript and the occasional accidental module.", cfg.Description)
	assert.Equal(t, "https://i.imgur.com/5NZs32D.png", cfg.Logo)
	assert.Equal(t, "/:slug/", cfg.Permalinks)
	assert.Equal(t, "https://farm3.staticflickr.com/2903/14642847567_eeef81964e_k_d.jpg", cfg.Cover)
	assert.Equal(t, 5, cfg.PostsPerPage)
	assert.Positive(t, cfg.PostsPerPage)
}

func TestDefaultNavigationOrder(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.Navigation)

	var labels []string
	for _, item := range cfg.Navigation {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Home", "Preact", "Architecture", "Ecosystem", "DOM"}, labels)
	assert.Equal(t, "https://jasonformat.com/", cfg.Navigation[0].URL)
	assert.Equal(t, "https://jasonformat.com/tag/dom/", cfg.Navigation[4].URL)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestDefaultPermalinkHasSlug(t *testing.T) {
	p, err := Default().Permalink()
	require.NoError(t, err)
	assert.Equal(t, []string{TokenSlug}, p.Tokens())
}

func TestDefaultReturnsCopy(t *testing.T) {
	cfg := Default()
	cfg.Title = "changed"
	cfg.Navigation[0].Label = "changed"

	fresh := Default()
	assert.Equal(t, "JASON Format", fresh.Title)
	assert.Equal(t, "Home", fresh.Navigation[0].Label)
}

func TestCloneNilNavigation(t *testing.T) {
	cfg := SiteConfig{Title: "x"}
	assert.Nil(t, cfg.Clone().Navigation)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SITECONFIG_TEST_KEY", "")
	assert.Equal(t, "fallback", EnvOr("SITECONFIG_TEST_KEY", "fallback"))

	t.Setenv("SITECONFIG_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOr("SITECONFIG_TEST_KEY", "fallback"))
}
