package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions: it runs
// the page's wizard through prompts and returns the submitted lead.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	sink         leads.Sink
	wizardOpts   []wizard.Option
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render prompts through every wizard step of page and serializes the lead.
// The page must embed its steps, which pages built without a server-side
// wizard do.
func (r *Renderer) Render(ctx context.Context, page model.Page, _ render.RenderOptions) ([]byte, error) {
	lead, err := r.Collect(ctx, page)
	if err != nil {
		return nil, err
	}
	return r.serialize(page.Wizard.Steps, lead)
}

// Collect runs the qualification wizard interactively until the lead is
// submitted or a prompt fails.
func (r *Renderer) Collect(ctx context.Context, page model.Page) (model.Lead, error) {
	if ctx == nil {
		return model.Lead{}, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return model.Lead{}, errors.New("tui: prompt driver is nil")
	}
	steps := page.Wizard.Steps
	if len(steps) == 0 {
		return model.Lead{}, ErrNoSteps
	}

	opts := append([]wizard.Option{wizard.WithAdvanceDelay(0)}, r.wizardOpts...)
	if r.sink != nil {
		opts = append(opts, wizard.WithSink(r.sink))
	}
	w, err := wizard.New(steps, opts...)
	if err != nil {
		return model.Lead{}, fmt.Errorf("tui: %w", err)
	}
	defer w.Close()

	text := page.Wizard.Copy
	if title := sectionTitle(text.Section); title != "" {
		r.info(ctx, r.theme.InfoPrefix+title)
	}

	state := NewState(model.ContactInfo{})
	for {
		if err := ctx.Err(); err != nil {
			return model.Lead{}, err
		}
		snap := w.Snapshot()
		switch snap.State.Phase {
		case model.PhaseInProgress:
			err = r.askStep(ctx, w, snap, text)
		case model.PhaseCollecting:
			err = r.askContact(ctx, w, page.Wizard.Fields, text, state)
		default:
			lead, _ := w.Lead()
			r.info(ctx, r.theme.InfoPrefix+text.SuccessTitle)
			return lead, nil
		}
		if err != nil {
			return model.Lead{}, err
		}
	}
}

func (r *Renderer) askStep(ctx context.Context, w *wizard.Wizard, snap wizard.Snapshot, text model.WizardCopy) error {
	step := snap.Step
	labels := append([]string(nil), step.Options...)
	back := -1
	if snap.State.StepIndex > 0 {
		back = len(labels)
		labels = append(labels, text.BackLabel)
	}
	defaultIndex := indexOf(step.Options, snap.Answers[step.Key])
	if defaultIndex < 0 {
		defaultIndex = 0
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fmt.Sprintf("%sStep %d of %d · %s", r.theme.PromptPrefix, snap.State.StepIndex+1, len(snap.Steps), step.Title),
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if back >= 0 && idx == back {
		return r.tolerate(ctx, w.GoBack())
	}
	if idx < 0 || idx >= len(step.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}
	if err := w.SelectOption(step.Key, step.Options[idx]); err != nil {
		return r.tolerate(ctx, err)
	}
	w.Flush()
	return nil
}

func (r *Renderer) askContact(ctx context.Context, w *wizard.Wizard, fields []model.FieldView, text model.WizardCopy, state *State) error {
	r.info(ctx, r.theme.InfoPrefix+text.ContactTitle)

	for _, spec := range fields {
		field, err := wizard.ParseField(spec.Name)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		label := spec.Placeholder
		if label == "" {
			label = spec.Name
		}
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   r.theme.PromptPrefix + label,
			Default:   state.Value(field),
			Help:      strings.Join(state.ErrorsFor(field), "; "),
			Validator: fieldValidator(field, label),
		})
		if err != nil {
			return err
		}
		state.SetValue(field, value)
	}
	if err := w.UpdateContact(state.Contact()); err != nil {
		return r.tolerate(ctx, err)
	}

	send, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.theme.PromptPrefix + text.SubmitLabel + "?",
		Default: true,
		Help:    text.Disclaimer,
	})
	if err != nil {
		return err
	}
	if !send {
		return r.tolerate(ctx, w.GoBack())
	}

	_, err = w.Submit(ctx)
	state.SetErrors(err)
	var verr *wizard.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		for _, spec := range fields {
			for _, message := range state.ErrorsFor(wizard.Field(spec.Name)) {
				r.info(ctx, fmt.Sprintf("%s%s %s", r.theme.ErrorPrefix, spec.Placeholder, message))
			}
		}
		return nil
	case errors.Is(err, wizard.ErrDelivery):
		r.info(ctx, r.theme.ErrorPrefix+"We couldn't send your details. Please try again.")
		return nil
	default:
		return err
	}
}

// tolerate reports stale choices and transitions and keeps the session going.
func (r *Renderer) tolerate(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wizard.ErrInvalidChoice) || errors.Is(err, wizard.ErrInvalidTransition) {
		r.info(ctx, r.theme.ErrorPrefix+err.Error())
		return nil
	}
	return err
}

func (r *Renderer) info(ctx context.Context, msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	_ = r.driver.Info(ctx, msg)
}

func fieldValidator(field wizard.Field, label string) func(string) error {
	return func(value string) error {
		err := wizard.ValidateField(field, value)
		var verr *wizard.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			return fmt.Errorf("%s %s", label, verr.Fields[0].Message)
		}
		return err
	}
}

func sectionTitle(section model.Section) string {
	return strings.TrimSpace(strings.Join([]string{section.Title, section.Highlight}, " "))
}

func (r *Renderer) serialize(steps []model.Step, lead model.Lead) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(steps, lead)), nil
	}
	out, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("tui: encode lead: %w", err)
	}
	return out, nil
}

func prettyPrint(steps []model.Step, lead model.Lead) string {
	var b strings.Builder
	for _, step := range steps {
		fmt.Fprintf(&b, "%s=%s\n", step.Key, lead.Answers[step.Key])
	}
	fmt.Fprintf(&b, "name=%s\n", lead.Contact.Name)
	fmt.Fprintf(&b, "company=%s\n", lead.Contact.Company)
	fmt.Fprintf(&b, "email=%s\n", lead.Contact.Email)
	if lead.Session != "" {
		fmt.Fprintf(&b, "session=%s\n", lead.Session)
	}
	return b.String()
}
