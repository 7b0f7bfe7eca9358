// Package components renders the landing page with gomponents. It emits the
// same markup contract as the template renderer (class names, data
// attributes, form fields) so the shared stylesheet and runtime script apply
// unchanged. Theme partial overrides are template-only and ignored here.
package components

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	g "maragu.dev/gomponents"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/reveal"
)

// Name is the registry name of the components renderer.
const Name = "components"

// Option configures the renderer.
type Option func(*Renderer)

// WithReveal overrides the stagger used for data-reveal-delay attributes.
func WithReveal(opts reveal.Options) Option {
	return func(r *Renderer) {
		r.reveal = opts
	}
}

// Renderer builds the page as a gomponents node tree.
type Renderer struct {
	reveal reveal.Options
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a components renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{reveal: reveal.DefaultOptions()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the full document or, for render.FragmentWizard, the wizard
// section alone.
func (r *Renderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := render.ResolveTheme(options.Theme)

	var node g.Node
	switch options.Fragment {
	case render.FragmentPage:
		config, err := json.Marshal(runtimeConfig(page))
		if err != nil {
			return nil, fmt.Errorf("components renderer: encode config: %w", err)
		}
		node = r.document(page, view, string(config))
	case render.FragmentWizard:
		node = r.wizardSection(page)
	default:
		return nil, fmt.Errorf("components renderer: unknown fragment %q", options.Fragment)
	}

	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return nil, fmt.Errorf("components renderer: render: %w", err)
	}
	return buf.Bytes(), nil
}

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
