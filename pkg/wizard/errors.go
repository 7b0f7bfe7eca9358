package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidChoice indicates the selected option is not one of the step's
	// declared options.
	ErrInvalidChoice = errors.New("wizard: invalid choice")
	// ErrInvalidTransition indicates the requested move is not allowed from the
	// current state.
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	// ErrUnknownField indicates a contact field other than name, company or
	// email.
	ErrUnknownField = errors.New("wizard: unknown contact field")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("wizard: validation failed")
	// ErrDelivery wraps failures reported by the lead sink.
	ErrDelivery = errors.New("wizard: lead delivery failed")
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("wizard: closed")
	// ErrNoSteps indicates the wizard was configured without questions.
	ErrNoSteps = errors.New("wizard: at least one step is required")

	errSubmitting = fmt.Errorf("%w: a submission is in progress", ErrInvalidTransition)
)

// FieldError describes one rejected contact field.
type FieldError struct {
	Field   Field  `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every contact field that failed validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", field.Field, field.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field is among the failures.
func (e *ValidationError) Has(field Field) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// FieldMessages groups messages by field name, the shape renderers use for
// inline errors.
func (e *ValidationError) FieldMessages() map[string][]string {
	if e == nil {
		return nil
	}
	out := make(map[string][]string, len(e.Fields))
	for _, fe := range e.Fields {
		out[string(fe.Field)] = append(out[string(fe.Field)], fe.Message)
	}
	return out
}
