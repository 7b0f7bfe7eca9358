package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSteps is returned when the page carries no wizard questions.
	ErrNoSteps = errors.New("tui: page has no wizard steps")
	// ErrInvalidSelection is returned when a driver reports an index outside
	// the offered options.
	ErrInvalidSelection = errors.New("tui: selection out of range")
)
