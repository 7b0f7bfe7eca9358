// Package server serves the landing page over HTTP. The wizard forms post to
// /wizard/{action}; plain form posts are answered with a redirect back to the
// page and script driven posts with the re-rendered wizard section.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/components/headline"
	"github.com/goliatone/go-leadwizard/internal/logging"
	"github.com/goliatone/go-leadwizard/internal/metrics"
	"github.com/goliatone/go-leadwizard/internal/session"
	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
)

// Server wires the orchestrator and the session store to HTTP routes.
type Server struct {
	orch        *orchestrator.Orchestrator
	store       *session.Store
	limiter     *session.Limiter
	funnel      *metrics.Funnel
	api         http.Handler
	headline    []headline.OptionFn
	logger      zerolog.Logger
	renderer    string
	theme       string
	variant     string
	basePath    string
	metricsPath string
}

// New returns a Server rendering pages with orch and keeping visitors in
// store.
func New(orch *orchestrator.Orchestrator, store *session.Store, opts ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if store == nil {
		return nil, errors.New("server: session store is required")
	}
	s := &Server{
		orch:        orch,
		store:       store,
		logger:      zerolog.Nop(),
		metricsPath: "/metrics",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", health)
	if s.funnel != nil {
		r.Handle(s.metricsPath, s.funnel.Handler())
	}

	if s.basePath == "" {
		s.routes(r)
	} else {
		r.Route(s.basePath, s.routes)
	}
	return r
}

func (s *Server) routes(r chi.Router) {
	assets := http.FileServer(http.FS(vanilla.AssetsFS()))
	r.Handle("/assets/*", http.StripPrefix(s.basePath+"/assets/", assets))

	r.Get("/", s.page)
	r.Post("/wizard/{action}", s.wizardAction)

	if _, err := headline.RegisterRoutes(r, "", s.headline...); err != nil {
		s.logger.Error().Err(err).Msg("headline routes not registered")
	}
	if s.api != nil {
		r.Mount("/api/wizard", s.api)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, timeouts Timeouts) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       timeouts.Read,
		ReadHeaderTimeout: timeouts.Read,
		WriteTimeout:      timeouts.Write,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", addr).Str("base_path", s.basePath).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown := timeouts.Shutdown
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()
	s.logger.Info().Msg("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func cleanBasePath(basePath string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return basePath
}
