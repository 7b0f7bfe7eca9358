// Package wizard implements the multi-step qualification flow: a sequence of
// single-choice questions followed by a contact form and a terminal submitted
// state.
//
// Sequencer tracks the question steps and collected answers, ContactCollector
// gathers and validates the contact details and Wizard composes both into a
// state machine with a debounced auto-advance between questions.
package wizard
