package themes

import (
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys understood by the page renderers. Keys are plain identifiers so
// templates can include them by name.
const (
	PartialNav       = "nav"
	PartialHero      = "hero"
	PartialPains     = "pains"
	PartialProducts  = "products"
	PartialSolutions = "solutions"
	PartialCases     = "cases"
	PartialTrust     = "trust"
	PartialPricing   = "pricing"
	PartialWizard    = "wizard"
	PartialFooter    = "footer"
)

// Asset keys resolved through RendererConfig.AssetURL.
const (
	AssetStylesheet = "stylesheet"
	AssetRuntime    = "runtime"
	AssetVariant    = "variant"
)

// DefaultFallbacks maps every partial key to the bundled template.
func DefaultFallbacks() map[string]string {
	return map[string]string{
		PartialNav:       "partials/nav.tmpl",
		PartialHero:      "partials/hero.tmpl",
		PartialPains:     "partials/pains.tmpl",
		PartialProducts:  "partials/products.tmpl",
		PartialSolutions: "partials/solutions.tmpl",
		PartialCases:     "partials/cases.tmpl",
		PartialTrust:     "partials/trust.tmpl",
		PartialPricing:   "partials/pricing.tmpl",
		PartialWizard:    "partials/wizard.tmpl",
		PartialFooter:    "partials/footer.tmpl",
	}
}

// RendererConfig merges the manifest and variant layers of sel over
// fallbacks. Tokens become CSS custom properties prefixed with "--" and asset
// keys resolve under the manifest prefix.
func RendererConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest

	partials := copyMap(fallbacks)
	tokens := copyMap(manifest.Tokens)
	files := copyMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		mergeInto(tokens, variant.Tokens)
		mergeInto(files, variant.Assets.Files)
		partials = mergeInto(partials, manifest.Templates)
		partials = mergeInto(partials, variant.Templates)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	} else {
		partials = mergeInto(partials, manifest.Templates)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

// WithBasePath returns a copy of cfg whose asset URLs are prefixed with
// basePath, used for sites exported under a sub-path.
func WithBasePath(cfg *theme.RendererConfig, basePath string) *theme.RendererConfig {
	basePath = strings.TrimRight(basePath, "/")
	if cfg == nil || basePath == "" || cfg.AssetURL == nil {
		return cfg
	}
	out := *cfg
	inner := cfg.AssetURL
	out.AssetURL = func(key string) string {
		url := inner(key)
		if url == "" || !strings.HasPrefix(url, "/") || strings.HasPrefix(url, basePath+"/") {
			return url
		}
		return basePath + url
	}
	return &out
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeInto(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		if value != "" {
			dst[key] = value
		}
	}
	return dst
}
