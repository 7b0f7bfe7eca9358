// Package api serves the qualification wizard as a JSON API. Requests are
// validated against the embedded OpenAPI document before they reach the
// handlers; sessions are shared with the HTML site.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/internal/metrics"
	"github.com/goliatone/go-leadwizard/internal/session"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// ErrRateLimited rejects a submission over the per-session budget. Its text
// is shown to visitors.
var ErrRateLimited error = orchestrator.Notice("Too many submissions. Please wait a moment and try again.")

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("api: session not found")

// Option customises an API.
type Option func(*API)

// WithLimiter throttles submissions per session.
func WithLimiter(limiter *session.Limiter) Option {
	return func(a *API) {
		a.limiter = limiter
	}
}

// WithFunnel records failures that produce no wizard event.
func WithFunnel(funnel *metrics.Funnel) Option {
	return func(a *API) {
		a.funnel = funnel
	}
}

// WithLogger sets the fallback logger. Request scoped loggers from
// zerolog.Ctx take precedence.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// API holds the handler dependencies.
type API struct {
	store     *session.Store
	steps     []model.Step
	limiter   *session.Limiter
	funnel    *metrics.Funnel
	logger    zerolog.Logger
	validator *validator
}

// New loads the OpenAPI document and returns an API over store. steps is the
// question list published at /steps.
func New(ctx context.Context, store *session.Store, steps []model.Step, opts ...Option) (*API, error) {
	if store == nil {
		return nil, errors.New("api: session store is required")
	}
	doc, err := LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	v, err := newValidator(doc)
	if err != nil {
		return nil, err
	}
	a := &API{
		store:     store,
		steps:     steps,
		logger:    zerolog.Nop(),
		validator: v,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Handler returns the API router. Mount it under any prefix.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(a.validator.middleware)
	r.Get(documentPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(document)
	})
	r.Get("/steps", a.listSteps)
	r.Post("/sessions", a.createSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", a.getSession)
		r.Delete("/", a.deleteSession)
		r.Post("/answers", a.selectOption)
		r.Post("/back", a.goBack)
		r.Put("/contact", a.updateContact)
		r.Post("/submit", a.submit)
	})
	return r
}

type answerRequest struct {
	Key    string `json:"key"`
	Option string `json:"option"`
}

func (a *API) listSteps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.steps)
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	wz, id, _, err := a.store.Acquire("")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.log(r).Debug().Str("session", id).Msg("api session created")
	writeJSON(w, http.StatusCreated, wz.Snapshot())
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	wz, ok := a.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.store.Delete(id)
	if a.limiter != nil {
		a.limiter.Forget(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) selectOption(w http.ResponseWriter, r *http.Request) {
	wz, ok := a.lookup(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := wz.SelectOption(req.Key, req.Option); err != nil {
		a.fail(w, r, err)
		return
	}
	// API clients have no highlight animation to wait for.
	wz.Flush()
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

func (a *API) goBack(w http.ResponseWriter, r *http.Request) {
	wz, ok := a.lookup(w, r)
	if !ok {
		return
	}
	if err := wz.GoBack(); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

func (a *API) updateContact(w http.ResponseWriter, r *http.Request) {
	wz, ok := a.lookup(w, r)
	if !ok {
		return
	}
	var info model.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := wz.UpdateContact(info); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	wz, ok := a.lookup(w, r)
	if !ok {
		return
	}
	var info *model.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if info != nil {
		if err := wz.UpdateContact(*info); err != nil {
			a.fail(w, r, err)
			return
		}
	}

	id := chi.URLParam(r, "id")
	if !a.limiter.Allow(id) {
		if a.funnel != nil {
			a.funnel.RateLimited.Inc()
		}
		a.fail(w, r, ErrRateLimited)
		return
	}
	if _, err := wz.Submit(r.Context()); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

func (a *API) lookup(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, bool) {
	wz, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", ErrSessionNotFound)
		return nil, false
	}
	return wz, true
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if a.funnel != nil && !errors.Is(err, wizard.ErrValidation) && !errors.Is(err, ErrRateLimited) {
		a.funnel.Failure(err)
	}
	event := a.log(r).Debug()
	if status >= http.StatusInternalServerError {
		event = a.log(r).Warn()
	}
	event.Err(err).Int("status", status).Msg("api request rejected")

	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, status, problem{Error: err.Error(), Reason: metrics.Reason(err), Fields: verr.Fields})
		return
	}
	writeProblem(w, status, reason(err), err)
}

func (a *API) log(r *http.Request) *zerolog.Logger {
	if logger := zerolog.Ctx(r.Context()); logger != nil && logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return &a.logger
}

func reason(err error) string {
	if errors.Is(err, ErrRateLimited) {
		return "rate_limited"
	}
	return metrics.Reason(err)
}
