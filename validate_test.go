package siteconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problemFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	var fields []string
	for _, p := range verr.Problems {
		fields = append(fields, p.Field)
	}
	return fields
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := SiteConfig{
		Title:      "  ",
		Logo:       "not a url",
		Cover:      "ftp://example.com/cover.jpg",
		Navigation: []NavItem{{Label: "", URL: "/relative"}},
		Permalinks: "/:year/",
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Equal(t, []string{
		"title",
		"logo",
		"cover",
		"navigation[0].label",
		"navigation[0].url",
		"permalinks",
		"postsPerPage",
	}, problemFields(t, err))
}

func TestValidatePostsPerPage(t *testing.T) {
	for _, n := range []int{0, -1} {
		cfg := Default()
		cfg.PostsPerPage = n
		assert.Equal(t, []string{"postsPerPage"}, problemFields(t, Validate(cfg)))
	}
}

func TestValidateOptionalImages(t *testing.T) {
	cfg := Default()
	cfg.Logo = ""
	cfg.Cover = ""
	assert.NoError(t, Validate(cfg))
}

func TestValidateEmptyNavigation(t *testing.T) {
	cfg := Default()
	cfg.Navigation = nil
	assert.NoError(t, Validate(cfg))
}

func TestValidateURLWithoutHost(t *testing.T) {
	cfg := Default()
	cfg.Logo = "https:///logo.png"
	assert.Equal(t, []string{"logo"}, problemFields(t, Validate(cfg)))
}

func TestValidationErrorMessage(t *testing.T) {
	cfg := Default()
	cfg.Title = ""
	err := Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, "invalid configuration: title: must not be empty", err.Error())
}
