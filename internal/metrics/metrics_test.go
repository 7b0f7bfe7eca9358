package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

func testSteps() []model.Step {
	return []model.Step{
		{Title: "Role", Key: "role", Options: []string{"CEO", "CTO"}},
		{Title: "Size", Key: "size", Options: []string{"1-10", "11-50"}},
	}
}

func TestObserverCountsFunnel(t *testing.T) {
	funnel := New()
	failing := true
	sink := leads.SinkFunc(func(context.Context, model.Lead) error {
		if failing {
			return fmt.Errorf("smtp down")
		}
		return nil
	})

	w, err := wizard.New(testSteps(),
		wizard.WithAdvanceDelay(0),
		wizard.WithSink(sink),
		wizard.WithObserver(funnel.Observer()),
	)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}

	if err := w.SelectOption("role", "CTO"); err != nil {
		t.Fatalf("select role: %v", err)
	}
	if err := w.SelectOption("size", "1-10"); err != nil {
		t.Fatalf("select size: %v", err)
	}
	if _, err := w.Submit(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}

	_ = w.UpdateContact(model.ContactInfo{Name: "Jane", Company: "Acme", Email: "jane@acme.com"})
	_, err = w.Submit(context.Background())
	funnel.Failure(err)
	failing = false
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got := testutil.ToFloat64(funnel.Answers.WithLabelValues("role", "CTO")); got != 1 {
		t.Fatalf("role answers = %v", got)
	}
	if got := testutil.ToFloat64(funnel.WizardEvents.WithLabelValues(string(wizard.EventCollecting))); got != 1 {
		t.Fatalf("collecting events = %v", got)
	}
	if got := testutil.ToFloat64(funnel.Failures.WithLabelValues("validation")); got != 1 {
		t.Fatalf("validation failures = %v", got)
	}
	if got := testutil.ToFloat64(funnel.Failures.WithLabelValues("delivery")); got != 1 {
		t.Fatalf("delivery failures = %v", got)
	}
	if got := testutil.ToFloat64(funnel.Submissions); got != 1 {
		t.Fatalf("submissions = %v", got)
	}
}

func TestReason(t *testing.T) {
	tests := map[string]error{
		"none":               nil,
		"validation":         &wizard.ValidationError{},
		"delivery":           fmt.Errorf("%w: boom", wizard.ErrDelivery),
		"invalid_choice":     wizard.ErrInvalidChoice,
		"invalid_transition": fmt.Errorf("wrap: %w", wizard.ErrInvalidTransition),
		"closed":             wizard.ErrClosed,
		"other":              io.EOF,
	}
	for want, err := range tests {
		if got := Reason(err); got != want {
			t.Fatalf("Reason(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestHandlerExposesFunnel(t *testing.T) {
	funnel := New()
	funnel.PageView("labz", "paper", "vanilla")
	funnel.ActiveSessions.Set(3)

	rec := httptest.NewRecorder()
	funnel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`leadwizard_page_views_total{renderer="vanilla",theme="labz",variant="paper"} 1`,
		"leadwizard_sessions_active 3",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
