package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/siteconfig"
)

const headerETag = "ETag"

// renderDocument writes the cached encoding of the site config, answering
// 304 when the client already holds the current ETag.
func (a *App) renderDocument(c echo.Context, f siteconfig.Format) error {
	doc, err := a.docs.get(f)
	if err != nil {
		return err
	}
	h := c.Response().Header()
	h.Set(headerETag, doc.etag)
	if etagMatches(c.Request().Header.Get("If-None-Match"), doc.etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, f.ContentType(), doc.body)
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
