package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/siteconfig"
)

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleFormat(f siteconfig.Format) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.renderDocument(c, f)
	}
}

// handleConfig picks the format from ?format= or, failing that, the Accept
// header. JSON is the fallback.
func (a *App) handleConfig(c echo.Context) error {
	if name := c.QueryParam("format"); name != "" {
		f, err := siteconfig.ParseFormat(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return a.renderDocument(c, f)
	}
	return a.renderDocument(c, negotiateFormat(c.Request().Header.Get(echo.HeaderAccept)))
}

func negotiateFormat(accept string) siteconfig.Format {
	accept = strings.ToLower(accept)
	switch {
	case strings.Contains(accept, "yaml"):
		return siteconfig.FormatYAML
	case strings.Contains(accept, "javascript"):
		return siteconfig.FormatJS
	}
	return siteconfig.FormatJSON
}

type permalinkResponse struct {
	Slug string `json:"slug"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// handlePermalink expands the configured template for a slug. Templates that
// need more than :slug cannot be expanded from a slug alone.
func (a *App) handlePermalink(c echo.Context) error {
	slug := c.Param("slug")
	path, err := a.permalink.ExpandSlug(slug)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	resp := permalinkResponse{Slug: slug, Path: path}
	if a.Config.BaseURL != "" {
		resp.URL = siteconfig.BuildURL(a.Config.BaseURL, path)
	}
	return c.JSON(http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= 500 {
		a.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: msg})
}
