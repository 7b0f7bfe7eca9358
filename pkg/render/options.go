package render

import theme "github.com/goliatone/go-theme"

// Fragments a renderer can be asked for instead of the full document.
const (
	FragmentPage   = ""
	FragmentWizard = "wizard"
)

// RenderOptions carry per-request settings that do not belong in the page
// model.
type RenderOptions struct {
	// Theme is the resolved theme/variant configuration. Renderers fall back
	// to their bundled look when nil.
	Theme *theme.RendererConfig
	// Fragment selects a partial render, e.g. FragmentWizard for progressive
	// form posts that only replace the wizard card.
	Fragment string
}
