package tui

import (
	"errors"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// State tracks the contact values typed so far and the errors reported by the
// last submit, so a re-prompt starts from what the visitor entered.
type State struct {
	values map[wizard.Field]string
	errors map[wizard.Field][]string
}

// NewState seeds the state with prefilled contact values.
func NewState(prefill model.ContactInfo) *State {
	return &State{
		values: map[wizard.Field]string{
			wizard.FieldName:    prefill.Name,
			wizard.FieldCompany: prefill.Company,
			wizard.FieldEmail:   prefill.Email,
		},
		errors: make(map[wizard.Field][]string),
	}
}

// Value returns the last value entered for field.
func (s *State) Value(field wizard.Field) string {
	if s == nil {
		return ""
	}
	return s.values[field]
}

// SetValue records a value for field.
func (s *State) SetValue(field wizard.Field, value string) {
	if s == nil {
		return
	}
	s.values[field] = value
}

// ErrorsFor returns the messages attached to field by the last submit.
func (s *State) ErrorsFor(field wizard.Field) []string {
	if s == nil {
		return nil
	}
	return s.errors[field]
}

// SetErrors replaces the recorded errors with those carried by err. Errors
// other than *wizard.ValidationError clear the state.
func (s *State) SetErrors(err error) {
	if s == nil {
		return
	}
	s.errors = make(map[wizard.Field][]string)
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, fe := range verr.Fields {
		s.errors[fe.Field] = append(s.errors[fe.Field], fe.Message)
	}
}

// Contact returns the recorded values as contact details.
func (s *State) Contact() model.ContactInfo {
	if s == nil {
		return model.ContactInfo{}
	}
	return model.ContactInfo{
		Name:    s.values[wizard.FieldName],
		Company: s.values[wizard.FieldCompany],
		Email:   s.values[wizard.FieldEmail],
	}
}
