package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/schedule"
)

// Wizard composes a Sequencer and a ContactCollector into the qualification
// state machine:
//
//	InProgress --select (not last)--> InProgress (after the advance delay)
//	InProgress --select (last)------> Collecting
//	InProgress --back (index>0)-----> InProgress
//	Collecting --back---------------> InProgress (last step)
//	Collecting --submit (invalid)---> Collecting
//	Collecting --submit (valid)-----> Submitted
//
// Submitted is terminal. All methods are safe for concurrent use; the only
// background work is the scheduled advance, which is cancelled by GoBack, a
// re-selection and Close.
type Wizard struct {
	mu        sync.Mutex
	seq       *Sequencer
	contact   ContactCollector
	phase     model.Phase
	scheduler schedule.Scheduler
	delay     time.Duration
	sink      leads.Sink
	now       func() time.Time
	session   string
	observers []Observer
	pending   *pendingAdvance
	lead      *model.Lead
	closed    bool
	// submitting is set while the sink delivers; contact edits, GoBack and
	// a second Submit are refused until delivery returns.
	submitting bool
}

type pendingAdvance struct {
	timer schedule.Timer
	done  chan struct{}
}

// New returns a wizard at the first step.
func New(steps []model.Step, opts ...Option) (*Wizard, error) {
	seq, err := NewSequencer(steps)
	if err != nil {
		return nil, err
	}
	w := &Wizard{
		seq:       seq,
		phase:     model.PhaseInProgress,
		scheduler: schedule.Real(),
		delay:     DefaultAdvanceDelay,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// SelectOption answers the current step. On the last step the wizard moves to
// Collecting at once; otherwise the advance is scheduled after the configured
// delay, replacing any advance still pending from an earlier selection.
func (w *Wizard) SelectOption(key, option string) error {
	w.mu.Lock()
	events, err := w.selectLocked(key, option)
	w.mu.Unlock()
	w.notify(events)
	return err
}

func (w *Wizard) selectLocked(key, option string) ([]Event, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if w.phase != model.PhaseInProgress {
		return nil, fmt.Errorf("%w: cannot select an option while %s", ErrInvalidTransition, w.phase)
	}

	last, err := w.seq.Select(key, option)
	if err != nil {
		return nil, err
	}
	events := []Event{w.eventLocked(EventAnswered, key, option)}
	w.cancelPendingLocked()

	switch {
	case last:
		w.phase = model.PhaseCollecting
		events = append(events, w.eventLocked(EventCollecting, "", ""))
	case w.delay <= 0:
		if err := w.seq.Advance(); err != nil {
			return events, err
		}
		events = append(events, w.eventLocked(EventAdvanced, "", ""))
	default:
		pending := &pendingAdvance{done: make(chan struct{})}
		w.pending = pending
		pending.timer = w.scheduler.AfterFunc(w.delay, func() {
			w.fire(pending)
		})
	}
	return events, nil
}

func (w *Wizard) fire(pending *pendingAdvance) {
	w.mu.Lock()
	if w.pending != pending {
		w.mu.Unlock()
		return
	}
	events := w.advanceLocked()
	w.mu.Unlock()
	w.notify(events)
}

func (w *Wizard) advanceLocked() []Event {
	pending := w.pending
	w.pending = nil
	close(pending.done)
	if err := w.seq.Advance(); err != nil {
		return nil
	}
	return []Event{w.eventLocked(EventAdvanced, "", "")}
}

func (w *Wizard) cancelPendingLocked() {
	if w.pending == nil {
		return
	}
	if w.pending.timer != nil {
		w.pending.timer.Stop()
	}
	close(w.pending.done)
	w.pending = nil
}

// Flush runs a pending advance immediately and reports whether one existed.
func (w *Wizard) Flush() bool {
	w.mu.Lock()
	if w.pending == nil {
		w.mu.Unlock()
		return false
	}
	if w.pending.timer != nil {
		w.pending.timer.Stop()
	}
	events := w.advanceLocked()
	w.mu.Unlock()
	w.notify(events)
	return true
}

// AwaitSettled blocks until no advance is pending or ctx is done.
func (w *Wizard) AwaitSettled(ctx context.Context) error {
	for {
		w.mu.Lock()
		pending := w.pending
		w.mu.Unlock()
		if pending == nil {
			return nil
		}
		select {
		case <-pending.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// GoBack returns to the previous question. From Collecting it returns to the
// last question with every answer kept. It fails with ErrInvalidTransition on
// the first question and once submitted.
func (w *Wizard) GoBack() error {
	w.mu.Lock()
	events, err := w.backLocked()
	w.mu.Unlock()
	w.notify(events)
	return err
}

func (w *Wizard) backLocked() ([]Event, error) {
	if w.closed {
		return nil, ErrClosed
	}
	switch w.phase {
	case model.PhaseInProgress:
		if w.seq.Index() == 0 {
			return nil, fmt.Errorf("%w: already on the first step", ErrInvalidTransition)
		}
		w.cancelPendingLocked()
		if err := w.seq.Back(); err != nil {
			return nil, err
		}
	case model.PhaseCollecting:
		if w.submitting {
			return nil, errSubmitting
		}
		w.phase = model.PhaseInProgress
	default:
		return nil, fmt.Errorf("%w: cannot go back once %s", ErrInvalidTransition, w.phase)
	}
	return []Event{w.eventLocked(EventSteppedBack, "", "")}, nil
}

// UpdateField sets a contact value while collecting.
func (w *Wizard) UpdateField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.collectingLocked("update contact"); err != nil {
		return err
	}
	return w.contact.Update(field, value)
}

// UpdateContact replaces every contact value while collecting.
func (w *Wizard) UpdateContact(info model.ContactInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.collectingLocked("update contact"); err != nil {
		return err
	}
	w.contact.info = info
	return nil
}

// Submit validates the contact details and hands the lead to the sink. A
// validation failure returns a *ValidationError and a sink failure an error
// wrapping ErrDelivery; both leave the wizard collecting. The sink runs
// without the wizard lock, so accessors stay responsive during delivery.
func (w *Wizard) Submit(ctx context.Context) (model.Lead, error) {
	w.mu.Lock()
	lead, events, err := w.prepareSubmitLocked()
	if err != nil || w.sink == nil {
		if err == nil {
			events = w.commitSubmitLocked(lead)
		}
		w.mu.Unlock()
		w.notify(events)
		return lead, err
	}
	w.submitting = true
	sink := w.sink
	w.mu.Unlock()

	deliverErr := sink.Deliver(ctx, lead)

	w.mu.Lock()
	w.submitting = false
	if deliverErr != nil {
		w.mu.Unlock()
		return model.Lead{}, fmt.Errorf("%w: %w", ErrDelivery, deliverErr)
	}
	events = w.commitSubmitLocked(lead)
	w.mu.Unlock()
	w.notify(events)
	return lead, nil
}

func (w *Wizard) prepareSubmitLocked() (model.Lead, []Event, error) {
	if err := w.collectingLocked("submit"); err != nil {
		return model.Lead{}, nil, err
	}

	info, err := w.contact.Validate()
	if err != nil {
		event := w.eventLocked(EventValidationFailed, "", "")
		event.Err = err
		return model.Lead{}, []Event{event}, err
	}

	return model.Lead{
		Session:     w.session,
		Answers:     w.seq.Answers(),
		Contact:     info,
		SubmittedAt: w.now().UTC(),
	}, nil, nil
}

// commitSubmitLocked records a delivered lead. A Close that landed during
// delivery does not undo it: the sink already has the lead.
func (w *Wizard) commitSubmitLocked(lead model.Lead) []Event {
	w.phase = model.PhaseSubmitted
	w.lead = &lead
	return []Event{w.eventLocked(EventSubmitted, "", "")}
}

func (w *Wizard) collectingLocked(action string) error {
	if w.closed {
		return ErrClosed
	}
	if w.submitting {
		return errSubmitting
	}
	if w.phase != model.PhaseCollecting {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, w.phase)
	}
	return nil
}

// Close cancels pending timers. Later mutations return ErrClosed; accessors
// keep working.
func (w *Wizard) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.cancelPendingLocked()
	event := w.eventLocked(EventClosed, "", "")
	w.mu.Unlock()
	w.notify([]Event{event})
	return nil
}

// Closed reports whether Close was called.
func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// State returns the phase and current step index.
func (w *Wizard) State() model.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

// CurrentStep returns the question at the current index.
func (w *Wizard) CurrentStep() model.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Current()
}

// Steps returns the configured questions.
func (w *Wizard) Steps() []model.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Steps()
}

// Answers returns a copy of the recorded answers.
func (w *Wizard) Answers() model.Answers {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Answers()
}

// Contact returns the contact values as entered.
func (w *Wizard) Contact() model.ContactInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contact.Contact()
}

// Lead returns the submitted lead.
func (w *Wizard) Lead() (model.Lead, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lead == nil {
		return model.Lead{}, false
	}
	lead := *w.lead
	lead.Answers = lead.Answers.Clone()
	return lead, true
}

// Progress returns the one-based question number and the question count.
func (w *Wizard) Progress() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Index() + 1, w.seq.Len()
}

// Pending reports whether an auto-advance is scheduled.
func (w *Wizard) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// Session returns the identifier set by WithSession.
func (w *Wizard) Session() string {
	return w.session
}

func (w *Wizard) stateLocked() model.State {
	return model.State{Phase: w.phase, StepIndex: w.seq.Index()}
}

func (w *Wizard) eventLocked(kind EventKind, step, option string) Event {
	return Event{
		Kind:    kind,
		Session: w.session,
		State:   w.stateLocked(),
		Step:    step,
		Option:  option,
	}
}

func (w *Wizard) notify(events []Event) {
	for _, event := range events {
		for _, observer := range w.observers {
			observer(event)
		}
	}
}

// Snapshot is a consistent copy of the wizard taken under one lock.
type Snapshot struct {
	Session string            `json:"session,omitempty"`
	State   model.State       `json:"state"`
	Step    model.Step        `json:"step"`
	Steps   []model.Step      `json:"steps"`
	Answers model.Answers     `json:"answers"`
	Contact model.ContactInfo `json:"contact"`
	Pending bool              `json:"pending"`
	Lead    *model.Lead       `json:"lead,omitempty"`
}

// Snapshot returns the current state in one consistent read.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		Session: w.session,
		State:   w.stateLocked(),
		Step:    w.seq.Current(),
		Steps:   w.seq.Steps(),
		Answers: w.seq.Answers(),
		Contact: w.contact.Contact(),
		Pending: w.pending != nil,
	}
	if w.lead != nil {
		lead := *w.lead
		lead.Answers = lead.Answers.Clone()
		snap.Lead = &lead
	}
	return snap
}
