package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

func (r *Renderer) wizardSection(page model.Page) g.Node {
	view := page.Wizard

	var body g.Node
	switch view.Phase {
	case model.PhaseInProgress:
		body = questionCard(view)
	case model.PhaseCollecting:
		body = contactCard(view)
	default:
		body = successCard(view)
	}

	return h.Section(
		h.Class("lw-section lw-get-started"),
		h.ID(view.Copy.Section.ID),
		sectionHeading(view.Copy.Section),
		h.Div(
			h.Class("lw-wizard"),
			h.ID("lw-wizard"),
			g.Attr("data-wizard"),
			g.Attr("data-phase", view.PhaseName),
			body,
		),
	)
}

func wizardForm(view model.WizardView, kind string, class string, children ...g.Node) g.Node {
	return g.El("form",
		g.If(class != "", h.Class(class)),
		g.Attr("method", "post"),
		g.If(view.Action != "", g.Attr("action", view.Action+"/"+kind)),
		g.Attr("data-wizard-form", kind),
		hidden("session", view.Session),
		g.Group(children),
	)
}

func hidden(name, value string) g.Node {
	return h.Input(h.Type("hidden"), h.Name(name), h.Value(value))
}

func backForm(view model.WizardView) g.Node {
	return wizardForm(view, "back", "",
		h.Button(h.Type("submit"), h.Class("lw-link"), g.Text(view.Copy.BackLabel)),
	)
}

func questionCard(view model.WizardView) g.Node {
	bars := make([]g.Node, 0, len(view.Progress))
	for _, done := range view.Progress {
		class := "lw-progress-bar"
		if done {
			class += " is-done"
		}
		bars = append(bars, h.Span(h.Class(class)))
	}

	return g.Group([]g.Node{
		h.Div(h.Class("lw-progress"), g.Attr("aria-hidden", "true"), g.Group(bars)),
		h.P(h.Class("lw-step-count"), g.Text("Step "+strconv.Itoa(view.StepNumber)+" of "+strconv.Itoa(view.StepCount))),
		h.H3(h.Class("lw-step-title"), g.Text(view.Step.Title)),
		formErrors(view),
		wizardForm(view, "select", "lw-options",
			hidden("key", view.Step.Key),
			g.Map(view.Options, func(option model.OptionView) g.Node {
				class := "lw-option"
				if option.Selected {
					class += " is-selected"
				}
				return h.Button(h.Type("submit"), h.Name("option"), h.Value(option.Label), h.Class(class), g.Text(option.Label))
			}),
		),
		g.If(view.CanGoBack, backForm(view)),
	})
}

func formErrors(view model.WizardView) g.Node {
	if len(view.FormErrors) == 0 {
		return nil
	}
	return h.Ul(
		h.Class("lw-form-errors"),
		h.Role("alert"),
		g.Map(view.FormErrors, func(message string) g.Node { return h.Li(g.Text(message)) }),
	)
}

func contactCard(view model.WizardView) g.Node {
	return g.Group([]g.Node{
		h.H3(h.Class("lw-step-title"), g.Text(view.Copy.ContactTitle)),
		h.P(h.Class("lw-intro"), g.Text(view.Copy.ContactIntro)),
		formErrors(view),
		wizardForm(view, "submit", "lw-contact",
			g.Attr("novalidate"),
			g.Map(view.Fields, func(field model.FieldView) g.Node {
				class := "lw-field"
				if len(field.Errors) > 0 {
					class += " has-error"
				}
				return h.Label(
					h.Class(class),
					h.Span(h.Class("lw-sr-only"), g.Text(field.Placeholder)),
					h.Input(h.Type(field.Type), h.Name(field.Name), h.Value(field.Value), h.Placeholder(field.Placeholder), h.Required()),
					g.Map(field.Errors, func(message string) g.Node {
						return h.Span(h.Class("lw-field-error"), g.Text(field.Placeholder+" "+message))
					}),
				)
			}),
			h.Button(h.Type("submit"), h.Class("lw-button lw-button-primary lw-submit"), g.Text(view.Copy.SubmitLabel)),
		),
		h.P(h.Class("lw-disclaimer"), g.Text(view.Copy.Disclaimer)),
		backForm(view),
	})
}

func successCard(view model.WizardView) g.Node {
	var summary g.Node
	if len(view.Summary) > 0 {
		summary = h.Dl(
			h.Class("lw-summary"),
			g.Map(view.Summary, func(answer model.AnswerView) g.Node {
				return h.Div(h.Dt(g.Text(answer.Title)), h.Dd(g.Text(answer.Value)))
			}),
		)
	}
	return h.Div(
		h.Class("lw-success"),
		h.Role("status"),
		h.Span(h.Class("lw-success-mark"), g.Attr("aria-hidden", "true"), g.Text("✓")),
		h.H3(g.Text(view.Copy.SuccessTitle)),
		h.P(g.Text(view.Copy.SuccessBody)),
		summary,
	)
}
