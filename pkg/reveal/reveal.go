// Package reveal models reveal-on-view: an element becomes shown the first
// time a visibility observer reports it in view and, by default, stays shown.
// The same options are serialised into data attributes for the page runtime.
package reveal

import (
	"strconv"
	"sync"
	"time"
)

// Options configure how sections animate into view.
type Options struct {
	Once     bool
	Margin   string
	Duration time.Duration
	Offset   int
	Stagger  time.Duration
}

// DefaultOptions matches the landing page motion: a single 28px rise over
// 700ms triggered slightly before the element enters the viewport.
func DefaultOptions() Options {
	return Options{
		Once:     true,
		Margin:   "-60px",
		Duration: 700 * time.Millisecond,
		Offset:   28,
		Stagger:  80 * time.Millisecond,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithRepeat lets elements hide again when they leave the viewport.
func WithRepeat() Option {
	return func(o *Options) { o.Once = false }
}

// WithMargin sets the observer root margin.
func WithMargin(margin string) Option {
	return func(o *Options) {
		if margin != "" {
			o.Margin = margin
		}
	}
}

// WithDuration sets the transition length.
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Duration = d
		}
	}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Config renders the options for the runtime script.
func (o Options) Config() map[string]string {
	return map[string]string{
		"once":     strconv.FormatBool(o.Once),
		"margin":   o.Margin,
		"duration": strconv.FormatInt(o.Duration.Milliseconds(), 10),
		"offset":   strconv.Itoa(o.Offset),
		"stagger":  strconv.FormatInt(o.Stagger.Milliseconds(), 10),
	}
}

// Delay returns the stagger delay for the i-th element of a group.
func (o Options) Delay(i int) time.Duration {
	if i < 0 {
		return 0
	}
	return time.Duration(i) * o.Stagger
}

// Attrs returns the data attributes marking an element for reveal after
// delay.
func (o Options) Attrs(delay time.Duration) map[string]string {
	attrs := map[string]string{"data-reveal": ""}
	if delay > 0 {
		attrs["data-reveal-delay"] = strconv.FormatInt(delay.Milliseconds(), 10)
	}
	return attrs
}

// Latch is the visibility state of one element.
type Latch struct {
	mu      sync.Mutex
	once    bool
	visible bool
}

// NewLatch returns a hidden latch following opts.Once.
func NewLatch(opts Options) *Latch {
	return &Latch{once: opts.Once}
}

// Observe feeds an intersection result and returns whether the element is
// shown. With Once the latch never resets after the first true.
func (l *Latch) Observe(inView bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.once && l.visible {
		return true
	}
	l.visible = inView
	return l.visible
}

// Visible reports the current state.
func (l *Latch) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}
