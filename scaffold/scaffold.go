// Package scaffold provides the embedded starter files written by
// `siteconfig init`.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	Title       string
	Description string
	SiteURL     string // with trailing slash
}

// SiteFile is the name of the generated config file.
const SiteFile = "site.yaml"

var siteTemplate = template.Must(template.New("site.yaml.tmpl").Funcs(template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}).ParseFS(Templates, "templates/site.yaml.tmpl"))

// Render writes the starter site config for data.
func Render(w io.Writer, data Data) error {
	if err := siteTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}
