package tui

import (
	"io"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// OutputFormat controls how the submitted lead is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the lead as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied when printing messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSink delivers the submitted lead, in addition to returning it.
func WithSink(sink leads.Sink) Option {
	return func(r *Renderer) {
		r.sink = sink
	}
}

// WithWizardOptions forwards options to every wizard the renderer runs.
func WithWizardOptions(opts ...wizard.Option) Option {
	return func(r *Renderer) {
		r.wizardOpts = append(r.wizardOpts, opts...)
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
