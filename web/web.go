// Package web embeds the HTML assets: the server-rendered dashboard
// template and the static single-page app. Embedding keeps the binary
// self-contained, the same way the SQL migrations and the OpenAPI spec
// are compiled in.
package web

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Dashboard parses and returns the dashboard template set.
// The "ago" helper renders row timestamps as relative times.
func Dashboard() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"ago": humanize.Time}).
		ParseFS(templatesFS, "templates/*.tmpl"))
}

// Static returns the SPA file tree rooted at its own directory, ready to
// hand to http.FileServer.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web.Static: " + err.Error())
	}
	return sub
}
