package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-leadwizard/internal/api"
	"github.com/goliatone/go-leadwizard/internal/metrics"
	"github.com/goliatone/go-leadwizard/internal/session"
	"github.com/goliatone/go-leadwizard/pkg/catalog"
	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

type fixture struct {
	handler http.Handler
	store   *session.Store
	sink    *leads.Recorder
	funnel  *metrics.Funnel
	steps   []model.Step
	fail    bool
}

func newFixture(t *testing.T, basePath string, opts ...Option) *fixture {
	t.Helper()
	cat := catalog.MustDefault()
	f := &fixture{sink: &leads.Recorder{}, funnel: metrics.New(), steps: cat.Wizard.Steps}

	sink := leads.SinkFunc(func(ctx context.Context, lead model.Lead) error {
		if f.fail {
			return errors.New("crm offline")
		}
		return f.sink.Deliver(ctx, lead)
	})
	n := 0
	f.store = session.NewStore(func(id string) (*wizard.Wizard, error) {
		return wizard.New(f.steps,
			wizard.WithSession(id),
			wizard.WithSink(sink),
			wizard.WithObserver(f.funnel.Observer()),
		)
	}, session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("visitor-%d", n)
	}))

	orch := orchestrator.New(
		orchestrator.WithCatalog(cat),
		orchestrator.WithBasePath(basePath),
		orchestrator.WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }),
	)

	all := append([]Option{WithBasePath(basePath), WithMetrics(f.funnel, "/metrics")}, opts...)
	srv, err := New(orch, f.store, all...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	f.handler = srv.Handler()
	return f
}

func (f *fixture) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) post(t *testing.T, target string, form url.Values, fragment bool, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if fragment {
		req.Header.Set(FragmentHeader, "wizard")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q", want)
		}
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, "")
	rec := f.get(t, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
}

func TestLandingPage(t *testing.T) {
	f := newFixture(t, "")
	rec := f.get(t, "/?product=datamind")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	assertContains(t, rec.Body.String(),
		`action="/wizard/select"`,
		`name="session" value=""`,
		"Step 1 of 4",
		"/assets/css/leadwizard.css",
	)

	if got := testutil.ToFloat64(f.funnel.PageViews.WithLabelValues("default", "default", "default")); got != 1 {
		t.Fatalf("page views = %v", got)
	}
}

func TestUnknownThemeIs404(t *testing.T) {
	f := newFixture(t, "")
	if rec := f.get(t, "/?theme=nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAssetsAndHeadline(t *testing.T) {
	f := newFixture(t, "/site")

	rec := f.get(t, "/site/assets/js/leadwizard.js")
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("asset: %d", rec.Code)
	}

	rec = f.get(t, "/site/api/headline?frames=3")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"data"`) {
		t.Fatalf("headline: %d %s", rec.Code, rec.Body.String())
	}

	if rec := f.get(t, "/metrics"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "leadwizard_sessions_active") {
		t.Fatalf("metrics: %d", rec.Code)
	}
}

func TestPlainFormPostsRedirect(t *testing.T) {
	f := newFixture(t, "/site")
	referer := map[string]string{"Referer": "http://example.com/site/?variant=paper"}

	rec := f.post(t, "/site/wizard/select", url.Values{"key": {"role"}, "option": {f.steps[0].Options[0]}}, false, referer)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/site/?variant=paper#get-started" {
		t.Fatalf("location = %q", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].Value != "visitor-1" || cookies[0].Path != "/site/" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	page := f.get(t, "/site/?variant=paper", cookies[0])
	assertContains(t, page.Body.String(),
		"Step 2 of 4",
		`action="/site/wizard/select"`,
		`name="session" value="visitor-1"`,
		"/site/assets/css/paper.css",
	)

	rec = f.post(t, "/site/wizard/back", url.Values{"session": {"visitor-1"}}, false, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/site/#get-started" {
		t.Fatalf("back: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	wz, _ := f.store.Get("visitor-1")
	if wz.State().StepIndex != 0 {
		t.Fatalf("expected first step after back, got %+v", wz.State())
	}
}

func TestFragmentWizardFlow(t *testing.T) {
	f := newFixture(t, "")

	var session string
	for i, step := range f.steps {
		form := url.Values{"key": {step.Key}, "option": {step.Options[0]}}
		if session != "" {
			form.Set("session", session)
		}
		rec := f.post(t, "/wizard/select", form, true, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("select %s: %d", step.Key, rec.Code)
		}
		body := rec.Body.String()
		if strings.Contains(body, "<html") {
			t.Fatalf("fragment should not render the document")
		}
		assertContains(t, body, `<section class="lw-section lw-get-started" id="get-started">`)
		if i < len(f.steps)-1 {
			assertContains(t, body, fmt.Sprintf("Step %d of %d", i+2, len(f.steps)))
		} else {
			assertContains(t, body, `data-phase="collecting"`)
		}
		session = "visitor-1"
	}

	rec := f.post(t, "/wizard/submit", url.Values{"session": {session}, "name": {"Jane Doe"}, "company": {""}, "email": {"jane@"}}, true, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `value="Jane Doe"`, "lw-field has-error", "must be a valid email address")

	f.fail = true
	rec = f.post(t, "/wizard/submit", url.Values{"session": {session}, "company": {"Acme"}, "email": {"jane@acme.com"}}, true, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("delivery failure: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), "send your details. Please try again.")

	f.fail = false
	rec = f.post(t, "/wizard/submit", url.Values{"session": {session}}, true, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `data-phase="submitted"`, "lw-summary")

	got := f.sink.Leads()
	if len(got) != 1 || got[0].Contact.Name != "Jane Doe" || got[0].Session != session {
		t.Fatalf("unexpected leads: %+v", got)
	}
	if len(got[0].Answers) != len(f.steps) {
		t.Fatalf("expected %d answers, got %v", len(f.steps), got[0].Answers)
	}

	if got := testutil.ToFloat64(f.funnel.Submissions); got != 1 {
		t.Fatalf("submissions = %v", got)
	}
	if got := testutil.ToFloat64(f.funnel.Failures.WithLabelValues("delivery")); got != 1 {
		t.Fatalf("delivery failures = %v", got)
	}
}

func TestWizardActionErrors(t *testing.T) {
	f := newFixture(t, "")

	rec := f.post(t, "/wizard/select", url.Values{"key": {"role"}, "option": {"Astronaut"}}, true, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid choice: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), "That answer no longer applies. Please pick again.")

	rec = f.post(t, "/wizard/back", url.Values{"session": {"visitor-1"}}, true, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("back at first step: %d", rec.Code)
	}

	rec = f.post(t, "/wizard/select", url.Values{"session": {"visitor-1"}, "key": {"role"}, "option": {"Astronaut"}}, false, nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("plain post errors re-render the page: %d", rec.Code)
	}

	if rec := f.post(t, "/wizard/explode", url.Values{}, true, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown action: %d", rec.Code)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	f := newFixture(t, "", WithLimiter(session.NewLimiter(0.001, 1)))
	for i, step := range f.steps {
		form := url.Values{"key": {step.Key}, "option": {step.Options[0]}}
		if i > 0 {
			form.Set("session", "visitor-1")
		}
		f.post(t, "/wizard/select", form, true, nil)
	}

	rec := f.post(t, "/wizard/submit", url.Values{"session": {"visitor-1"}}, true, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("first submit: %d", rec.Code)
	}
	rec = f.post(t, "/wizard/submit", url.Values{"session": {"visitor-1"}, "name": {"Jane"}, "company": {"Acme"}, "email": {"jane@acme.com"}}, true, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second submit: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), "Too many submissions. Please wait a moment and try again.")
	if got := testutil.ToFloat64(f.funnel.RateLimited); got != 1 {
		t.Fatalf("rate limited = %v", got)
	}
}

func TestAPIMounted(t *testing.T) {
	steps := catalog.MustDefault().Wizard.Steps
	store := session.NewStore(func(id string) (*wizard.Wizard, error) {
		return wizard.New(steps, wizard.WithSession(id))
	})
	a, err := api.New(context.Background(), store, steps)
	if err != nil {
		t.Fatalf("new api: %v", err)
	}
	srv, err := New(orchestrator.New(), store, WithAPI(a.Handler()), WithBasePath("/site"))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/site/api/wizard/sessions", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session through server: %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(nil, session.NewStore(nil)); err == nil {
		t.Fatalf("expected orchestrator error")
	}
	if _, err := New(orchestrator.New(), nil); err == nil {
		t.Fatalf("expected store error")
	}
}
