package typewriter

import (
	"time"

	"github.com/goliatone/go-leadwizard/pkg/schedule"
)

// Timings controls how fast frames change.
type Timings struct {
	Type   time.Duration `json:"type"`
	Delete time.Duration `json:"delete"`
	Dwell  time.Duration `json:"dwell"`
}

// DefaultTimings mirrors the headline on the landing page: a slower type than
// delete rhythm and a long hold on the finished phrase.
func DefaultTimings() Timings {
	return Timings{
		Type:   80 * time.Millisecond,
		Delete: 35 * time.Millisecond,
		Dwell:  2400 * time.Millisecond,
	}
}

// Option customises a Presenter.
type Option func(*Presenter)

// WithTimings overrides the animation intervals. Non-positive values keep the
// defaults.
func WithTimings(t Timings) Option {
	return func(p *Presenter) {
		if t.Type > 0 {
			p.timings.Type = t.Type
		}
		if t.Delete > 0 {
			p.timings.Delete = t.Delete
		}
		if t.Dwell > 0 {
			p.timings.Dwell = t.Dwell
		}
	}
}

// WithScheduler sets the scheduler used by Run.
func WithScheduler(s schedule.Scheduler) Option {
	return func(p *Presenter) {
		if s != nil {
			p.scheduler = s
		}
	}
}
