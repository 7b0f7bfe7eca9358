package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/css/*.css assets/js/*.js
var embeddedAssets embed.FS

const (
	PageTemplate      = "page.tmpl"
	StylesheetName    = "css/leadwizard.css"
	RuntimeScriptName = "js/leadwizard.js"
)

// TemplatesFS exposes the embedded template bundle. Partial paths such as
// "partials/hero.tmpl" are relative to its root.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// AssetsFS exposes the embedded stylesheet and runtime script so callers can
// serve them over HTTP or copy them into an export.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
