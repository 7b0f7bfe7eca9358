package vanilla

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-leadwizard/pkg/render/template"
	"github.com/goliatone/go-leadwizard/pkg/render/template/pongo"
	"github.com/goliatone/go-leadwizard/pkg/themes"
)

// Name is the registry name of the template renderer.
const Name = "vanilla"

// Generator is the default value of the generator meta tag.
const Generator = "go-leadwizard"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	globals          map[string]any
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers templates from a directory on disk over the bundle,
// so a theme can ship a single partial and inherit the rest.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithGlobals adds site-wide values every template can read, such as the
// base path the site is mounted under.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = map[string]any{}
		}
		for key, value := range globals {
			cfg.globals[key] = value
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders the landing page with pongo2 templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	globals := map[string]any{"generator": Generator, "basePath": ""}
	for key, value := range cfg.globals {
		globals[key] = value
	}
	if err := renderer.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("vanilla renderer: set globals: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes page.tmpl, or only the wizard partial when
// options.Fragment is render.FragmentWizard.
func (r *Renderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := render.ResolveTheme(options.Theme)
	data := map[string]any{
		"page":   page,
		"theme":  view,
		"config": runtimeConfig(page),
	}

	name := PageTemplate
	switch options.Fragment {
	case render.FragmentPage:
	case render.FragmentWizard:
		name = view.Partials[themes.PartialWizard]
	default:
		return nil, fmt.Errorf("vanilla renderer: unknown fragment %q", options.Fragment)
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// runtimeConfig is the JSON handed to the page script.
func runtimeConfig(page model.Page) map[string]any {
	return map[string]any{
		"headline": page.Headline,
		"reveal":   page.Reveal,
		"wizard": map[string]any{
			"action":    page.Wizard.Action,
			"session":   page.Wizard.Session,
			"advanceMs": page.Wizard.AdvanceMs,
			"steps":     page.Wizard.Steps,
			"copy":      page.Wizard.Copy,
			"fields":    page.Wizard.Fields,
		},
	}
}
