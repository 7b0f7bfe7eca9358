package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadwizard/pkg/themes"
)

// ThemeView is the flattened theme data renderers hand to templates and
// components.
type ThemeView struct {
	Name     string            `json:"name"`
	Variant  string            `json:"variant"`
	Partials map[string]string `json:"partials"`
	Assets   map[string]string `json:"assets"`
	Style    string            `json:"style"`
}

// Asset returns the resolved URL for key or "".
func (v ThemeView) Asset(key string) string {
	return v.Assets[key]
}

// ResolveTheme flattens cfg. A nil cfg resolves the bundled default theme so
// pages rendered without a selection still link their stylesheet.
func ResolveTheme(cfg *theme.RendererConfig) ThemeView {
	if cfg == nil {
		cfg = defaultThemeConfig()
	}
	view := ThemeView{
		Partials: themes.DefaultFallbacks(),
		Assets:   map[string]string{},
	}
	if cfg == nil {
		return view
	}

	view.Name = cfg.Theme
	view.Variant = cfg.Variant
	for key, value := range cfg.Partials {
		if strings.TrimSpace(value) != "" {
			view.Partials[key] = value
		}
	}
	if cfg.AssetURL != nil {
		for _, key := range []string{themes.AssetStylesheet, themes.AssetVariant, themes.AssetRuntime} {
			if url := cfg.AssetURL(key); url != "" {
				view.Assets[key] = url
			}
		}
	}
	view.Style = StyleAttr(cfg.CSSVars)
	return view
}

// StyleAttr serialises CSS custom properties in key order.
func StyleAttr(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func defaultThemeConfig() *theme.RendererConfig {
	registry, err := themes.Default()
	if err != nil {
		return nil
	}
	sel, err := registry.Select("", "")
	if err != nil {
		return nil
	}
	return themes.RendererConfig(sel, themes.DefaultFallbacks())
}
