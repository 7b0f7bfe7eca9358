package vanilla_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadwizard/pkg/themes"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

func buildPage(t *testing.T, req orchestrator.Request) model.Page {
	t.Helper()
	orch := orchestrator.New(orchestrator.WithClock(func() time.Time {
		return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	}))
	page, err := orch.BuildPage(context.Background(), req)
	if err != nil {
		t.Fatalf("build page: %v", err)
	}
	return page
}

func renderHTML(t *testing.T, renderer *vanilla.Renderer, page model.Page, options render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(context.Background(), page, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestRendererFullPage(t *testing.T) {
	page := buildPage(t, orchestrator.Request{
		Selection: orchestrator.Selection{Product: "datamind"},
		Meta:      map[string]string{"robots": "index"},
	})
	html := renderHTML(t, newRenderer(t), page, render.RenderOptions{})

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Fatalf("expected doctype")
	}
	assertContains(t, html,
		`data-theme="labz"`,
		`data-variant="cyber"`,
		`<meta name="robots" content="index">`,
		`href="/assets/css/leadwizard.css"`,
		`src="/assets/js/leadwizard.js"`,
		`id="products"`,
		`id="get-started"`,
		`data-phase="in_progress"`,
		`Step 1 of 4`,
		`id="leadwizard-config"`,
		`"typeMs":80`,
	)
	if strings.Contains(html, `action="`) {
		t.Fatalf("static page must not carry form actions")
	}
}

func TestRendererPaperVariantSwapsHero(t *testing.T) {
	registry, err := themes.Default()
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	sel, err := registry.Select("labz", "paper")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := themes.RendererConfig(sel, themes.DefaultFallbacks())

	html := renderHTML(t, newRenderer(t), buildPage(t, orchestrator.Request{}), render.RenderOptions{Theme: cfg})
	assertContains(t, html,
		`data-variant="paper"`,
		`href="/assets/css/paper.css"`,
		`lw-hero-paper`,
	)
}

func TestRendererTemplatesDirOverridesPartial(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "partials"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	footer := `<footer class="custom-footer">{{ page.site.name }} {{ page.site.year }}</footer>`
	if err := os.WriteFile(filepath.Join(dir, "partials", "footer.tmpl"), []byte(footer), 0o644); err != nil {
		t.Fatalf("write footer: %v", err)
	}

	html := renderHTML(t, newRenderer(t, vanilla.WithTemplatesDir(dir)), buildPage(t, orchestrator.Request{}), render.RenderOptions{})
	assertContains(t, html, `<footer class="custom-footer">Impression Labz 2026</footer>`, `id="get-started"`)
}

func TestRendererGlobals(t *testing.T) {
	page := buildPage(t, orchestrator.Request{})

	html := renderHTML(t, newRenderer(t), page, render.RenderOptions{})
	assertContains(t, html, `<meta name="generator" content="go-leadwizard">`)
	if strings.Contains(html, "data-base-path") {
		t.Errorf("expected no base path attribute without a base path")
	}

	html = renderHTML(t, newRenderer(t, vanilla.WithGlobals(map[string]any{
		"basePath":  "/site",
		"generator": "acme",
	})), page, render.RenderOptions{})
	assertContains(t, html, `data-base-path="/site"`, `<meta name="generator" content="acme">`)
}

func TestRendererWizardFragment(t *testing.T) {
	steps := []model.Step{
		{Title: "Role", Key: "role", Options: []string{"CEO", "CTO"}},
	}
	w, err := wizard.New(steps, wizard.WithSession("sess-9"))
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	defer w.Close()
	if err := w.SelectOption("role", "CTO"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := w.UpdateField(wizard.FieldEmail, "not-an-email"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, submitErr := w.Submit(context.Background())

	page := buildPage(t, orchestrator.Request{Wizard: w, Action: "/wizard", Err: submitErr})
	html := renderHTML(t, newRenderer(t), page, render.RenderOptions{Fragment: render.FragmentWizard})

	if strings.Contains(html, "<html") {
		t.Fatalf("fragment must not render the document")
	}
	assertContains(t, html,
		`data-phase="collecting"`,
		`action="/wizard/submit"`,
		`name="session" value="sess-9"`,
		`value="not-an-email"`,
		`Work email address must be a valid email address`,
		`Your full name is required`,
	)
}

func TestRendererUnknownFragment(t *testing.T) {
	_, err := newRenderer(t).Render(context.Background(), model.Page{}, render.RenderOptions{Fragment: "pricing"})
	if err == nil {
		t.Fatalf("expected unknown fragment error")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName, "css/paper.css"} {
		data, err := fs.ReadFile(vanilla.AssetsFS(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
	if _, err := fs.Stat(vanilla.TemplatesFS(), vanilla.PageTemplate); err != nil {
		t.Fatalf("page template missing: %v", err)
	}
}
