package wizard

import "github.com/goliatone/go-leadwizard/pkg/model"

// EventKind classifies wizard notifications.
type EventKind string

const (
	EventAnswered         EventKind = "answered"
	EventAdvanced         EventKind = "advanced"
	EventSteppedBack      EventKind = "stepped_back"
	EventCollecting       EventKind = "collecting"
	EventValidationFailed EventKind = "validation_failed"
	EventSubmitted        EventKind = "submitted"
	EventClosed           EventKind = "closed"
)

// Event describes a state change.
type Event struct {
	Kind    EventKind
	Session string
	State   model.State
	Step    string
	Option  string
	Err     error
}

// Observer receives wizard events.
type Observer func(Event)
