package model

import (
	"fmt"
	"strings"
	"time"
)

// Step is a single-choice question in the qualification wizard. Steps are
// loaded once at startup and never mutated afterwards.
type Step struct {
	Title   string   `json:"title" yaml:"title"`
	Key     string   `json:"key" yaml:"key"`
	Options []string `json:"options" yaml:"options"`
}

// HasOption reports whether option is one of the step's declared choices.
func (s Step) HasOption(option string) bool {
	for _, candidate := range s.Options {
		if candidate == option {
			return true
		}
	}
	return false
}

// Answers maps a step key to the selected option text.
type Answers map[string]string

// Clone returns an independent copy. A nil receiver yields an empty map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// ContactInfo holds the free-text details gathered in the final stage.
type ContactInfo struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Company string `json:"company" yaml:"company" validate:"required"`
	Email   string `json:"email" yaml:"email" validate:"required,email"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c ContactInfo) Trimmed() ContactInfo {
	return ContactInfo{
		Name:    strings.TrimSpace(c.Name),
		Company: strings.TrimSpace(c.Company),
		Email:   strings.TrimSpace(c.Email),
	}
}

// Phase enumerates the wizard lifecycle stages.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseCollecting
	PhaseSubmitted
)

var phaseNames = map[Phase]string{
	PhaseInProgress: "in_progress",
	PhaseCollecting: "collecting",
	PhaseSubmitted:  "submitted",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText encodes the phase using its snake_case name.
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("model: unknown phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a snake_case phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	for phase, name := range phaseNames {
		if name == raw {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("model: unknown phase %q", raw)
}

// State is the externally visible wizard progression. StepIndex is only
// meaningful while Phase is PhaseInProgress; in the later phases it points at
// the last question step.
type State struct {
	Phase     Phase `json:"phase"`
	StepIndex int   `json:"stepIndex"`
}

// Lead is the structured payload produced by a successful submission and
// handed to the lead-capture collaborator.
type Lead struct {
	Session     string      `json:"session,omitempty"`
	Answers     Answers     `json:"answers"`
	Contact     ContactInfo `json:"contact"`
	SubmittedAt time.Time   `json:"submittedAt"`
}
