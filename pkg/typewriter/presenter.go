package typewriter

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-leadwizard/pkg/schedule"
)

// Frame is what the headline shows at a point in time.
type Frame struct {
	Text     string `json:"text"`
	Phrase   int    `json:"phrase"`
	Deleting bool   `json:"deleting"`
}

// Presenter cycles through phrases. It is safe for concurrent use.
type Presenter struct {
	mu        sync.Mutex
	phrases   [][]rune
	timings   Timings
	scheduler schedule.Scheduler

	index    int
	count    int
	deleting bool
}

// New validates phrases and returns a presenter positioned at the start of the
// first phrase with nothing typed.
func New(phrases []string, opts ...Option) (*Presenter, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	runes := make([][]rune, len(phrases))
	for i, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			return nil, ErrEmptyPhrase
		}
		runes[i] = []rune(phrase)
	}

	p := &Presenter{
		phrases:   runes,
		timings:   DefaultTimings(),
		scheduler: schedule.Real(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Phrases returns a copy of the configured phrases.
func (p *Presenter) Phrases() []string {
	out := make([]string, len(p.phrases))
	for i, phrase := range p.phrases {
		out[i] = string(phrase)
	}
	return out
}

// Timings returns the active intervals.
func (p *Presenter) Timings() Timings {
	return p.timings
}

// Frame returns the current frame without changing state.
func (p *Presenter) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameLocked()
}

// NextDelay reports how long the next Step waits before it applies.
func (p *Presenter) NextDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delayLocked()
}

// Step applies one transition and returns the resulting frame together with
// the delay that precedes it.
func (p *Presenter) Step() (Frame, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delay := p.delayLocked()
	current := p.phrases[p.index]
	switch {
	case !p.deleting && p.count == len(current):
		p.deleting = true
	case p.deleting && p.count == 0:
		p.deleting = false
		p.index = (p.index + 1) % len(p.phrases)
	case p.deleting:
		p.count--
	default:
		p.count++
	}
	return p.frameLocked(), delay
}

// Reset restarts the cycle at the first phrase.
func (p *Presenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index, p.count, p.deleting = 0, 0, false
}

func (p *Presenter) delayLocked() time.Duration {
	current := p.phrases[p.index]
	switch {
	case !p.deleting && p.count == len(current):
		return p.timings.Dwell
	case p.deleting && p.count == 0:
		return 0
	case p.deleting:
		return p.timings.Delete
	default:
		return p.timings.Type
	}
}

func (p *Presenter) frameLocked() Frame {
	return Frame{
		Text:     string(p.phrases[p.index][:p.count]),
		Phrase:   p.index,
		Deleting: p.deleting,
	}
}

// Playback is a running animation started by Play.
type Playback struct {
	// mu is held by a tick from its stopped check until the next tick is
	// armed, so no frame starts once Stop has returned.
	mu       sync.Mutex
	timer    schedule.Timer
	stopped  atomic.Bool
	emitting atomic.Bool
}

// Stop cancels the pending tick. Once it returns no new frame is emitted; a
// frame already being emitted is not interrupted. Calling Stop more than once
// is harmless, and it may be called from the emit callback.
func (pb *Playback) Stop() {
	if pb.stopped.Swap(true) {
		return
	}
	if !pb.mu.TryLock() {
		if pb.emitting.Load() {
			// The running tick sees stopped before arming another.
			return
		}
		pb.mu.Lock()
	}
	defer pb.mu.Unlock()
	if pb.timer != nil {
		pb.timer.Stop()
		pb.timer = nil
	}
}

// Stopped reports whether Stop was called.
func (pb *Playback) Stopped() bool {
	return pb.stopped.Load()
}

// Play emits the current frame immediately and then every subsequent frame
// when its delay elapses on s. The next tick is only scheduled after emit
// returns.
func (p *Presenter) Play(s schedule.Scheduler, emit func(Frame)) *Playback {
	if s == nil {
		s = p.scheduler
	}
	pb := &Playback{}
	emit(p.Frame())

	var tick func()
	armLocked := func() {
		if pb.stopped.Load() {
			pb.timer = nil
			return
		}
		pb.timer = s.AfterFunc(p.NextDelay(), tick)
	}
	tick = func() {
		pb.mu.Lock()
		defer pb.mu.Unlock()
		if pb.stopped.Load() {
			return
		}
		frame, _ := p.Step()
		pb.emitting.Store(true)
		emit(frame)
		pb.emitting.Store(false)
		armLocked()
	}

	pb.mu.Lock()
	armLocked()
	pb.mu.Unlock()
	return pb
}

// Run plays the animation on the presenter's scheduler until ctx is done.
func (p *Presenter) Run(ctx context.Context, emit func(Frame)) error {
	pb := p.Play(p.scheduler, emit)
	defer pb.Stop()
	<-ctx.Done()
	return ctx.Err()
}
