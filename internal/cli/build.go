package cli

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-leadwizard/pkg/catalog"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/renderers/components"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadwizard/pkg/themes"
)

type site struct {
	catalog  *catalog.Catalog
	themes   *themes.Registry
	registry *render.Registry
	orch     *orchestrator.Orchestrator
}

// buildSite loads the catalog and themes named by the configuration and
// assembles the orchestrator with the HTML renderers.
func (a *app) buildSite(extra ...orchestrator.Option) (*site, error) {
	cfg := a.cfg

	cat, err := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	}
	if err != nil {
		return nil, err
	}

	registry, err := themes.Default()
	if cfg.ThemesPath != "" {
		registry, err = themes.LoadFile(cfg.ThemesPath)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Theme != "" {
		if err := registry.SetDefault(cfg.Theme); err != nil {
			return nil, err
		}
	}

	html, err := vanilla.New(
		vanilla.WithTemplatesDir(cfg.TemplatesDir),
		vanilla.WithGlobals(map[string]any{"basePath": strings.TrimRight(cfg.BasePath, "/")}),
	)
	if err != nil {
		return nil, err
	}
	renderers := render.NewRegistry()
	renderers.MustRegister(html)
	renderers.MustRegister(components.New())
	if cfg.Renderer != "" && !renderers.Has(cfg.Renderer) {
		return nil, fmt.Errorf("cli: unknown renderer %q (available: %v)", cfg.Renderer, renderers.List())
	}

	opts := []orchestrator.Option{
		orchestrator.WithCatalog(cat),
		orchestrator.WithThemeSelector(registry),
		orchestrator.WithRegistry(renderers),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithBasePath(cfg.BasePath),
		orchestrator.WithAdvanceDelay(cfg.Wizard.AdvanceDelay),
	}
	return &site{
		catalog:  cat,
		themes:   registry,
		registry: renderers,
		orch:     orchestrator.New(append(opts, extra...)...),
	}, nil
}
