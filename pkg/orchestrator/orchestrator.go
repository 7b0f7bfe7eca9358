package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadwizard/pkg/catalog"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/renderers/components"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadwizard/pkg/reveal"
	"github.com/goliatone/go-leadwizard/pkg/themes"
	"github.com/goliatone/go-leadwizard/pkg/typewriter"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog replaces the embedded content catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme/variant names ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// provide its own.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) == 0 {
			return
		}
		o.themeFallbacks = make(map[string]string, len(fallbacks))
		for key, value := range fallbacks {
			o.themeFallbacks[key] = value
		}
	}
}

// WithTimings sets the typewriter timings published to the page runtime.
func WithTimings(t typewriter.Timings) Option {
	return func(o *Orchestrator) {
		o.timings = t
	}
}

// WithReveal sets the reveal-on-view options.
func WithReveal(opts reveal.Options) Option {
	return func(o *Orchestrator) {
		o.reveal = opts
	}
}

// WithAdvanceDelay sets the auto-advance delay published to the page
// runtime. It should match the delay the server wizards use.
func WithAdvanceDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.advanceDelay = d
		}
	}
}

// WithClock overrides the time source used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithBasePath prefixes generated asset URLs and wizard actions, for sites
// served under a sub-path.
func WithBasePath(basePath string) Option {
	return func(o *Orchestrator) {
		o.basePath = normalizeBasePath(basePath)
	}
}

// WithPageTransformer registers a Transformer that runs after the page is
// built and before it is rendered.
func WithPageTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// Orchestrator coordinates the catalog → page model → renderer pipeline. It
// applies defaults (embedded catalog, embedded themes, vanilla and components
// renderers) while remaining open to dependency injection.
type Orchestrator struct {
	catalog         *catalog.Catalog
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	timings         typewriter.Timings
	reveal          reveal.Options
	advanceDelay    time.Duration
	now             func() time.Time
	basePath        string
	transformers    []Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		timings:         typewriter.DefaultTimings(),
		reveal:          reveal.DefaultOptions(),
		advanceDelay:    wizard.DefaultAdvanceDelay,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page render.
type Request struct {
	// Renderer names the renderer to use. Blank uses the default.
	Renderer string

	// ThemeName and ThemeVariant select the look. Blank values use the
	// selector defaults.
	ThemeName    string
	ThemeVariant string

	// Wizard is the visitor's wizard. Nil renders a fresh wizard at the first
	// question and embeds every step so the page runtime can drive it.
	Wizard *wizard.Wizard

	// Action is the URL prefix wizard forms post to. Blank marks a static
	// page.
	Action string

	// Selection carries the active product/role/case tabs.
	Selection Selection

	// Err is the outcome of the last wizard mutation, surfaced inline.
	Err error

	// Fragment selects a partial render.
	Fragment string

	// Meta is copied into the page meta tags.
	Meta map[string]string
}

// Catalog returns the content catalog in use.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Registry returns the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Generate builds the page for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	page, err := o.BuildPage(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	cfg, err := o.ThemeConfig(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, page, render.RenderOptions{
		Theme:    cfg,
		Fragment: req.Fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// ContentType reports the content type of the named renderer.
func (o *Orchestrator) ContentType(name string) (string, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

// ThemeConfig resolves a theme selection into renderer configuration. A nil
// selector yields a nil config and renderers fall back to their bundled look.
func (o *Orchestrator) ThemeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	sel, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	cfg := themes.RendererConfig(sel, o.fallbacks())
	return themes.WithBasePath(cfg, o.basePath), nil
}

func (o *Orchestrator) fallbacks() map[string]string {
	if len(o.themeFallbacks) > 0 {
		return o.themeFallbacks
	}
	return themes.DefaultFallbacks()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = cat
	}
	if o.themeSelector == nil {
		registry, err := themes.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default themes: %w", err)
			return
		}
		o.themeSelector = registry
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(html)
		o.registry.MustRegister(components.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
