package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/internal/api"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/render"
	"github.com/goliatone/go-leadwizard/pkg/themes"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// Wizard form actions, the last segment of /wizard/{action}.
const (
	ActionSelect  = "select"
	ActionBack    = "back"
	ActionContact = "contact"
	ActionSubmit  = "submit"
)

const wizardAction = "/wizard"

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	req := s.request(r)
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if wz, ok := s.store.Get(cookie.Value); ok {
			req.Wizard = wz
		}
	}
	s.render(w, r, http.StatusOK, req)
}

func (s *Server) wizardAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	switch action {
	case ActionSelect, ActionBack, ActionContact, ActionSubmit:
	default:
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := r.PostForm.Get("session")
	if id == "" {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			id = cookie.Value
		}
	}
	wz, id, created, err := s.store.Acquire(id)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("session not started")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if created {
		s.setSessionCookie(w, id)
	}

	opErr := s.apply(r, wz, id, action)
	status := api.StatusCode(opErr)
	if opErr != nil {
		zerolog.Ctx(r.Context()).Debug().Err(opErr).Str("action", action).Str("session", id).Msg("wizard action rejected")
	}

	req := s.request(r)
	req.Wizard = wz
	req.Err = opErr
	if r.Header.Get(FragmentHeader) != "" {
		req.Fragment = render.FragmentWizard
		s.render(w, r, status, req)
		return
	}
	if opErr == nil {
		http.Redirect(w, r, s.redirectTarget(r), http.StatusSeeOther)
		return
	}
	s.render(w, r, status, req)
}

func (s *Server) apply(r *http.Request, wz *wizard.Wizard, id, action string) error {
	form := r.PostForm
	var err error
	switch action {
	case ActionSelect:
		if err = wz.SelectOption(form.Get("key"), form.Get("option")); err == nil {
			// The page already held the highlight for the advance delay.
			wz.Flush()
		}
	case ActionBack:
		err = wz.GoBack()
	case ActionContact:
		err = updateContact(wz, form)
	case ActionSubmit:
		if err = updateContact(wz, form); err != nil {
			break
		}
		if !s.limiter.Allow(id) {
			if s.funnel != nil {
				s.funnel.RateLimited.Inc()
			}
			return api.ErrRateLimited
		}
		_, err = wz.Submit(r.Context())
	}
	if err != nil && s.funnel != nil && !errors.Is(err, wizard.ErrValidation) {
		s.funnel.Failure(err)
	}
	return err
}

func updateContact(wz *wizard.Wizard, form url.Values) error {
	for _, field := range wizard.Fields() {
		values, ok := form[string(field)]
		if !ok || len(values) == 0 {
			continue
		}
		if err := wz.UpdateField(field, values[0]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) request(r *http.Request) orchestrator.Request {
	query := r.URL.Query()
	if ref := s.sameSiteReferer(r); ref != nil && r.Method != http.MethodGet {
		query = ref.Query()
	}
	return orchestrator.Request{
		Renderer:     s.renderer,
		ThemeName:    firstNonEmpty(query.Get("theme"), s.theme),
		ThemeVariant: firstNonEmpty(query.Get("variant"), s.variant),
		Action:       wizardAction,
		Selection:    orchestrator.SelectionFromQuery(query),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, req orchestrator.Request) {
	out, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, themes.ErrUnknownTheme) || errors.Is(err, themes.ErrUnknownVariant) {
			code = http.StatusNotFound
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", code).Msg("page render failed")
		http.Error(w, http.StatusText(code), code)
		return
	}

	contentType, err := s.orch.ContentType(req.Renderer)
	if err != nil {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(out)

	if s.funnel != nil && req.Fragment == "" && r.Method == http.MethodGet {
		s.funnel.PageView(firstNonEmpty(req.ThemeName, "default"), firstNonEmpty(req.ThemeVariant, "default"), firstNonEmpty(req.Renderer, "default"))
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	path := s.basePath + "/"
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     path,
		MaxAge:   int(s.store.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectTarget sends the visitor back to the page they posted from, or
// the site root, anchored at the wizard section.
func (s *Server) redirectTarget(r *http.Request) string {
	target := url.URL{Path: s.basePath + "/"}
	if ref := s.sameSiteReferer(r); ref != nil {
		target.Path = ref.Path
		target.RawQuery = ref.RawQuery
	}
	if cat := s.orch.Catalog(); cat != nil {
		target.Fragment = cat.Wizard.Copy.Section.ID
	}
	return target.String()
}

func (s *Server) sameSiteReferer(r *http.Request) *url.URL {
	raw := r.Referer()
	if raw == "" {
		return nil
	}
	ref, err := url.Parse(raw)
	if err != nil || (ref.Host != "" && ref.Host != r.Host) {
		return nil
	}
	if s.basePath != "" && ref.Path != s.basePath && !strings.HasPrefix(ref.Path, s.basePath+"/") {
		return nil
	}
	return ref
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
