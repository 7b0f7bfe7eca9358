// Package leadwizard renders a single page marketing site whose get-started
// section is a multi-step lead qualification wizard. The root package
// re-exports the pieces most callers need; the pkg/ tree holds the rest.
package leadwizard

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadwizard/pkg/catalog"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// Request describes one page render.
type Request = orchestrator.Request

// RenderOptions carries the resolved theme and fragment to renderers.
type RenderOptions = render.RenderOptions

// Lead is the payload produced by a successful submission.
type Lead = model.Lead

// Step is one qualification question.
type Step = model.Step

// NewOrchestrator builds a page orchestrator. Without options it uses the
// embedded catalog, the embedded themes and the HTML renderers.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the landing page with the named renderer, theme and
// variant. Blank names use the defaults.
func GenerateHTML(ctx context.Context, rendererName, themeName, variant string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, Request{
		Renderer:     rendererName,
		ThemeName:    themeName,
		ThemeVariant: variant,
	})
}

// NewWizard starts a wizard over the embedded catalog's steps.
func NewWizard(options ...wizard.Option) (*wizard.Wizard, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	return wizard.New(cat.Wizard.Steps, options...)
}

// WithCatalog replaces the embedded content catalog.
func WithCatalog(cat *catalog.Catalog) orchestrator.Option {
	return orchestrator.WithCatalog(cat)
}

// WithThemeSelector resolves theme and variant names ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks overrides the partials used when a theme does not
// provide its own.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// WithBasePath prefixes asset URLs and wizard actions.
func WithBasePath(basePath string) orchestrator.Option {
	return orchestrator.WithBasePath(basePath)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheets and page runtime script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(leadwizard.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
