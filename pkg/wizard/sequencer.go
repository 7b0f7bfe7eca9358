package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

// Sequencer walks an ordered list of single-choice steps and records one
// answer per visited step. It is not safe for concurrent use; Wizard guards it.
type Sequencer struct {
	steps   []model.Step
	index   int
	answers model.Answers
}

// NewSequencer validates steps and positions the sequencer at the first one.
func NewSequencer(steps []model.Step) (*Sequencer, error) {
	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}
	return &Sequencer{steps: cloneSteps(steps), answers: model.Answers{}}, nil
}

func cloneStep(step model.Step) model.Step {
	step.Options = append([]string(nil), step.Options...)
	return step
}

func cloneSteps(steps []model.Step) []model.Step {
	out := make([]model.Step, len(steps))
	for i, step := range steps {
		out[i] = cloneStep(step)
	}
	return out
}

// ValidateSteps checks that there is at least one step, that keys are present,
// unique and free of surrounding whitespace, and that every step offers at
// least one option.
func ValidateSteps(steps []model.Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}
	seen := make(map[string]struct{}, len(steps))
	for i, step := range steps {
		key := strings.TrimSpace(step.Key)
		if key == "" {
			return fmt.Errorf("wizard: step %d: key is required", i)
		}
		if key != step.Key {
			return fmt.Errorf("wizard: step %d: key %q has surrounding whitespace", i, step.Key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("wizard: step %d: duplicate key %q", i, key)
		}
		seen[key] = struct{}{}
		if len(step.Options) == 0 {
			return fmt.Errorf("wizard: step %q: at least one option is required", key)
		}
	}
	return nil
}

// Select records option for the current step. key must name the current step
// and option must be one of its options; on failure the answers are left
// untouched. It reports whether the current step is the last one.
func (s *Sequencer) Select(key, option string) (bool, error) {
	current := s.steps[s.index]
	if key != current.Key {
		return false, fmt.Errorf("%w: step %q is not current (current %q)", ErrInvalidTransition, key, current.Key)
	}
	if !current.HasOption(option) {
		return false, fmt.Errorf("%w: %q is not an option of step %q", ErrInvalidChoice, option, key)
	}
	s.answers[key] = option
	return s.IsLast(), nil
}

// Advance moves to the next step.
func (s *Sequencer) Advance() error {
	if s.IsLast() {
		return fmt.Errorf("%w: already on the last step", ErrInvalidTransition)
	}
	s.index++
	return nil
}

// Back moves to the previous step. Answers are kept.
func (s *Sequencer) Back() error {
	if s.index == 0 {
		return fmt.Errorf("%w: already on the first step", ErrInvalidTransition)
	}
	s.index--
	return nil
}

// Current returns a copy of the step at the current index.
func (s *Sequencer) Current() model.Step {
	return cloneStep(s.steps[s.index])
}

// Index returns the zero-based current position.
func (s *Sequencer) Index() int {
	return s.index
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	return len(s.steps)
}

// IsLast reports whether the current step is the final question.
func (s *Sequencer) IsLast() bool {
	return s.index == len(s.steps)-1
}

// Answer returns the recorded option for key.
func (s *Sequencer) Answer(key string) (string, bool) {
	value, ok := s.answers[key]
	return value, ok
}

// Answers returns a copy of the recorded answers.
func (s *Sequencer) Answers() model.Answers {
	return s.answers.Clone()
}

// Steps returns a copy of the configured steps.
func (s *Sequencer) Steps() []model.Step {
	return cloneSteps(s.steps)
}
