package orchestrator

import (
	"context"
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/themes"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				themes.AssetStylesheet: "theme.css",
			},
		},
	}
	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}
	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	out, err := orch.Generate(context.Background(), Request{
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
		Fragment:     render.FragmentWizard,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "Impression Labz" {
		t.Fatalf("unexpected output %q", out)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if renderer.options.Fragment != render.FragmentWizard {
		t.Fatalf("fragment not forwarded, got %q", renderer.options.Fragment)
	}
	if cfg.Theme != selection.Theme || cfg.Variant != selection.Variant {
		t.Fatalf("selection mismatch: got %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials[themes.PartialWizard]; got != themes.DefaultFallbacks()[themes.PartialWizard] {
		t.Fatalf("partials not merged with fallbacks, got %s", got)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens")
	}
	if got := cfg.AssetURL(themes.AssetStylesheet); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
}

func TestOrchestrator_DefaultThemesAndBasePath(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithBasePath("site/"),
		WithThemeFallbacks(map[string]string{themes.PartialHero: "custom/hero.tmpl"}),
	)

	if _, err := orch.Generate(context.Background(), Request{ThemeVariant: "paper"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config")
	}
	if cfg.Theme != "labz" || cfg.Variant != "paper" {
		t.Fatalf("expected labz/paper, got %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials[themes.PartialHero]; got != "partials/hero_paper.tmpl" {
		t.Fatalf("variant template should win over fallbacks, got %s", got)
	}
	if got := cfg.AssetURL(themes.AssetVariant); got != "/site/assets/css/paper.css" {
		t.Fatalf("unexpected variant asset url %q", got)
	}
	if renderer.page.Site.BasePath != "/site" {
		t.Fatalf("expected base path on page, got %q", renderer.page.Site.BasePath)
	}
}

func TestOrchestrator_SelectorErrorStopsRender(t *testing.T) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	selectErr := errors.New("no such theme")
	orch := New(
		WithRegistry(registry),
		WithThemeSelector(&stubThemeSelector{err: selectErr}),
	)

	_, err := orch.Generate(context.Background(), Request{ThemeName: "ghost"})
	if !errors.Is(err, selectErr) {
		t.Fatalf("expected selector error, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer must not run after a selection failure")
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	orch := New()
	_, err := orch.Generate(context.Background(), Request{Renderer: "react"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_ContentType(t *testing.T) {
	orch := New()
	for _, name := range []string{"", "vanilla", "components"} {
		got, err := orch.ContentType(name)
		if err != nil {
			t.Fatalf("content type %q: %v", name, err)
		}
		if got != "text/html; charset=utf-8" {
			t.Fatalf("content type %q: got %q", name, got)
		}
	}
}

type captureRenderer struct {
	options render.RenderOptions
	page    model.Page
	calls   int
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	r.calls++
	r.options = opts
	r.page = page
	return []byte(page.Site.Name), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
