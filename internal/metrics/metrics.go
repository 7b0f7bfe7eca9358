// Package metrics exposes the lead funnel as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// Funnel counts page views, wizard transitions and lead delivery outcomes.
// Each Funnel owns its registry so several servers can run in one process.
type Funnel struct {
	registry *prometheus.Registry

	PageViews      *prometheus.CounterVec
	WizardEvents   *prometheus.CounterVec
	Answers        *prometheus.CounterVec
	Submissions    prometheus.Counter
	Failures       *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
	RateLimited    prometheus.Counter
}

// New registers the funnel collectors on a fresh registry. Process and Go
// runtime collectors are included.
func New() *Funnel {
	f := &Funnel{
		registry: prometheus.NewRegistry(),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadwizard_page_views_total",
			Help: "Total number of rendered landing pages",
		}, []string{"theme", "variant", "renderer"}),
		WizardEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadwizard_wizard_events_total",
			Help: "Total number of wizard state changes by kind",
		}, []string{"kind"}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadwizard_wizard_answers_total",
			Help: "Total number of recorded answers by step and option",
		}, []string{"step", "option"}),
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadwizard_leads_submitted_total",
			Help: "Total number of leads delivered to the sink",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadwizard_wizard_failures_total",
			Help: "Total number of rejected wizard operations by reason",
		}, []string{"reason"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leadwizard_sessions_active",
			Help: "Number of wizard sessions currently held in memory",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadwizard_submit_rate_limited_total",
			Help: "Total number of submissions rejected by the rate limiter",
		}),
	}

	f.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		f.PageViews,
		f.WizardEvents,
		f.Answers,
		f.Submissions,
		f.Failures,
		f.ActiveSessions,
		f.RateLimited,
	)
	return f
}

// Registry returns the registry the collectors live on.
func (f *Funnel) Registry() *prometheus.Registry {
	return f.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (f *Funnel) Handler() http.Handler {
	return promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{})
}

// PageView records one rendered page.
func (f *Funnel) PageView(theme, variant, renderer string) {
	f.PageViews.WithLabelValues(theme, variant, renderer).Inc()
}

// Observer returns a wizard observer feeding the funnel.
func (f *Funnel) Observer() wizard.Observer {
	return func(evt wizard.Event) {
		f.WizardEvents.WithLabelValues(string(evt.Kind)).Inc()
		switch evt.Kind {
		case wizard.EventAnswered:
			f.Answers.WithLabelValues(evt.Step, evt.Option).Inc()
		case wizard.EventSubmitted:
			f.Submissions.Inc()
		case wizard.EventValidationFailed:
			f.Failures.WithLabelValues(Reason(evt.Err)).Inc()
		}
	}
}

// Failure records a rejected operation that did not produce a wizard event.
func (f *Funnel) Failure(err error) {
	if err == nil {
		return
	}
	f.Failures.WithLabelValues(Reason(err)).Inc()
}

// Reason buckets a wizard error into a low-cardinality label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, wizard.ErrValidation):
		return "validation"
	case errors.Is(err, wizard.ErrDelivery):
		return "delivery"
	case errors.Is(err, wizard.ErrInvalidChoice):
		return "invalid_choice"
	case errors.Is(err, wizard.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, wizard.ErrClosed):
		return "closed"
	default:
		return "other"
	}
}
