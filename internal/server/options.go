package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/components/headline"
	"github.com/goliatone/go-leadwizard/internal/metrics"
	"github.com/goliatone/go-leadwizard/internal/session"
)

// SessionCookie names the cookie carrying the wizard session id.
const SessionCookie = "lw_session"

// FragmentHeader asks the wizard endpoints for the wizard section only
// instead of a redirect.
const FragmentHeader = "X-Leadwizard-Fragment"

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the base logger for requests.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRenderer selects the renderer for pages. Blank uses the orchestrator
// default.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithTheme sets the theme and variant used when a request does not pick
// one with ?theme= and ?variant=.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.theme = name
		s.variant = variant
	}
}

// WithBasePath mounts every route under basePath. It should match the
// orchestrator base path so generated links resolve.
func WithBasePath(basePath string) Option {
	return func(s *Server) {
		s.basePath = cleanBasePath(basePath)
	}
}

// WithLimiter throttles submissions per session.
func WithLimiter(limiter *session.Limiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// WithMetrics records the funnel and serves it at path.
func WithMetrics(funnel *metrics.Funnel, path string) Option {
	return func(s *Server) {
		s.funnel = funnel
		if path != "" {
			s.metricsPath = path
		}
	}
}

// WithAPI mounts the JSON wizard API under /api/wizard.
func WithAPI(handler http.Handler) Option {
	return func(s *Server) {
		s.api = handler
	}
}

// WithHeadline configures the headline timeline endpoint.
func WithHeadline(fns ...headline.OptionFn) Option {
	return func(s *Server) {
		s.headline = append(s.headline, fns...)
	}
}

// Timeouts bound the HTTP server.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}
