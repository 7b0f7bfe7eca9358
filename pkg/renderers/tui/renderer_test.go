package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/schedule"
	"github.com/goliatone/go-leadwizard/pkg/typewriter"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectCfgs   []SelectConfig
	inputCfgs    []InputConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

// Input mimics survey: a value rejected by the validator is reported and the
// next scripted value is tried.
func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	for {
		if s.inputPos >= len(s.inputs) {
			return "", errors.New("no input scripted")
		}
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil {
			if err := cfg.Validator(val); err != nil {
				s.infoMessages = append(s.infoMessages, "invalid: "+err.Error())
				continue
			}
		}
		return val, nil
	}
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func testPage() model.Page {
	return model.Page{
		Wizard: model.WizardView{
			Copy: model.WizardCopy{
				Section:      model.Section{Title: "Start Your", Highlight: "AI Journey"},
				ContactTitle: "Almost there!",
				SubmitLabel:  "Get My Free AI Roadmap",
				BackLabel:    "← Back",
				SuccessTitle: "You're on the list!",
			},
			Steps: []model.Step{
				{Title: "What's your role?", Key: "role", Options: []string{"CEO / Founder", "CTO / VP Engineering"}},
				{Title: "How large is your team?", Key: "size", Options: []string{"1–10 people", "11–50 people"}},
			},
			Fields: []model.FieldView{
				{Name: "name", Type: "text", Placeholder: "Your full name"},
				{Name: "company", Type: "text", Placeholder: "Company name"},
				{Name: "email", Type: "email", Placeholder: "Work email address"},
			},
		},
	}
}

func fixedLeadClock() time.Time {
	return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
}

func TestRender_CollectsLeadAsJSON(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 1},
		inputs:    []string{"Jane Doe", "Acme", "jane@acme.com"},
		confirm:   []bool{true},
	}
	recorder := &leads.Recorder{}
	r := New(
		WithPromptDriver(driver),
		WithSink(recorder),
		WithWizardOptions(wizard.WithSession("term-1"), wizard.WithClock(fixedLeadClock)),
	)

	out, err := r.Render(context.Background(), testPage(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got model.Lead
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := model.Lead{
		Session:     "term-1",
		Answers:     model.Answers{"role": "CEO / Founder", "size": "11–50 people"},
		Contact:     model.ContactInfo{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"},
		SubmittedAt: fixedLeadClock(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lead mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Lead{want}, recorder.Leads()); diff != "" {
		t.Fatalf("sink mismatch (-want +got):\n%s", diff)
	}

	if msg := driver.selectCfgs[0].Message; msg != "Step 1 of 2 · What's your role?" {
		t.Fatalf("unexpected first prompt %q", msg)
	}
	if len(driver.selectCfgs[0].Options) != 2 {
		t.Fatalf("first step must not offer back: %v", driver.selectCfgs[0].Options)
	}
	if last := driver.selectCfgs[1].Options; last[len(last)-1] != "← Back" {
		t.Fatalf("second step should offer back, got %v", last)
	}
	if driver.infoMessages[0] != "Start Your AI Journey" || driver.infoMessages[len(driver.infoMessages)-1] != "You're on the list!" {
		t.Fatalf("unexpected info messages %v", driver.infoMessages)
	}
}

func TestRender_BackKeepsAnswerHighlighted(t *testing.T) {
	driver := &stubDriver{
		// role, back from size, role again, size
		selectIdx: []int{1, 2, 1, 0},
		inputs:    []string{"Jane", "Acme", "jane@acme.com"},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), testPage(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.selectCfgs[2].DefaultIndex; got != 1 {
		t.Fatalf("revisited step should preselect the previous answer, got %d", got)
	}
	want := "role=CTO / VP Engineering\nsize=1–10 people\nname=Jane\ncompany=Acme\nemail=jane@acme.com\n"
	if string(out) != want {
		t.Fatalf("unexpected pretty output:\n%s", out)
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %s", r.ContentType())
	}
}

func TestRender_InputValidationAndDeclineReturnsToQuestions(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0, 1},
		inputs: []string{
			"Jane", "Acme", "not-an-email", "jane@acme.com",
			"Jane", "Acme", "jane@acme.com",
		},
		confirm: []bool{false, true},
	}
	r := New(WithPromptDriver(driver))

	lead, err := r.Collect(context.Background(), testPage())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if lead.Answers["size"] != "11–50 people" {
		t.Fatalf("expected re-answered size, got %q", lead.Answers["size"])
	}

	found := false
	for _, msg := range driver.infoMessages {
		if msg == "invalid: Work email address must be a valid email address" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected email validation message, got %v", driver.infoMessages)
	}
	if got := driver.inputCfgs[3].Default; got != "Jane" {
		t.Fatalf("second contact round should prefill values, got %q", got)
	}
}

func TestRender_DeliveryFailureAllowsRetry(t *testing.T) {
	attempts := 0
	sink := leads.SinkFunc(func(context.Context, model.Lead) error {
		attempts++
		if attempts == 1 {
			return errors.New("crm offline")
		}
		return nil
	})
	driver := &stubDriver{
		selectIdx: []int{0, 0},
		inputs:    []string{"Jane", "Acme", "jane@acme.com", "Jane", "Acme", "jane@acme.com"},
		confirm:   []bool{true, true},
	}
	r := New(WithPromptDriver(driver), WithSink(sink), WithTheme(Theme{ErrorPrefix: "! "}))

	if _, err := r.Collect(context.Background(), testPage()); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected two delivery attempts, got %d", attempts)
	}
	want := "! We couldn't send your details. Please try again."
	found := false
	for _, msg := range driver.infoMessages {
		found = found || msg == want
	}
	if !found {
		t.Fatalf("expected delivery failure message, got %v", driver.infoMessages)
	}
}

func TestRender_Errors(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Render(context.Background(), model.Page{}, render.RenderOptions{}); !errors.Is(err, ErrNoSteps) {
		t.Fatalf("expected ErrNoSteps, got %v", err)
	}

	aborting := &stubDriver{}
	r = New(WithPromptDriver(aborting))
	if _, err := r.Render(context.Background(), testPage(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected prompt error to propagate")
	}

	r = New(WithPromptDriver(&stubDriver{selectIdx: []int{7}}))
	if _, err := r.Render(context.Background(), testPage(), render.RenderOptions{}); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestStateErrors(t *testing.T) {
	state := NewState(model.ContactInfo{Name: "Jane"})
	state.SetErrors(&wizard.ValidationError{Fields: []wizard.FieldError{
		{Field: wizard.FieldEmail, Rule: "required", Message: "is required"},
	}})
	if diff := cmp.Diff([]string{"is required"}, state.ErrorsFor(wizard.FieldEmail)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	state.SetErrors(nil)
	if len(state.ErrorsFor(wizard.FieldEmail)) != 0 {
		t.Fatalf("expected errors cleared")
	}
	if state.Contact().Name != "Jane" {
		t.Fatalf("prefill lost")
	}
}

func TestHeadlinePrinterFrames(t *testing.T) {
	clock := schedule.NewManual()
	presenter, err := typewriter.New([]string{"AB"}, typewriter.WithScheduler(clock))
	if err != nil {
		t.Fatalf("presenter: %v", err)
	}

	var buf bytes.Buffer
	printer := NewHeadlinePrinter(&buf, "Runs on")
	playback := presenter.Play(clock, printer.Print)
	clock.Advance(typewriter.DefaultTimings().Type * 2)
	playback.Stop()
	printer.Done()

	frames := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\r\033[2K")
	want := []string{"", "Runs on ▌", "Runs on A▌", "Runs on AB▌"}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayHeadlineStopsOnCancel(t *testing.T) {
	presenter, err := typewriter.New([]string{"A"}, typewriter.WithScheduler(schedule.NewManual()))
	if err != nil {
		t.Fatalf("presenter: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := PlayHeadline(ctx, &buf, "", presenter); err != nil {
		t.Fatalf("play: %v", err)
	}
	if buf.String() != "\r\033[2K▌\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
