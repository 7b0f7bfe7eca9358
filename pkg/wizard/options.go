package wizard

import (
	"time"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/schedule"
)

// DefaultAdvanceDelay is how long a selected option stays highlighted before
// the wizard moves to the next question.
const DefaultAdvanceDelay = 280 * time.Millisecond

// Option customises a Wizard.
type Option func(*Wizard)

// WithScheduler sets the scheduler used for the debounced auto-advance.
func WithScheduler(s schedule.Scheduler) Option {
	return func(w *Wizard) {
		if s != nil {
			w.scheduler = s
		}
	}
}

// WithAdvanceDelay overrides DefaultAdvanceDelay. Zero or negative advances
// synchronously inside SelectOption.
func WithAdvanceDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.delay = d
	}
}

// WithSink sets the collaborator receiving submitted leads.
func WithSink(sink leads.Sink) Option {
	return func(w *Wizard) {
		w.sink = sink
	}
}

// WithClock overrides time.Now for lead timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithSession tags events and leads with a session identifier.
func WithSession(id string) Option {
	return func(w *Wizard) {
		w.session = id
	}
}

// WithObserver registers a hook invoked after every state change. Observers
// run outside the wizard lock and may call read accessors.
func WithObserver(fn Observer) Option {
	return func(w *Wizard) {
		if fn != nil {
			w.observers = append(w.observers, fn)
		}
	}
}
