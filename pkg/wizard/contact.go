package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

// Field names a contact input.
type Field string

const (
	FieldName    Field = "name"
	FieldCompany Field = "company"
	FieldEmail   Field = "email"
)

// Fields lists the contact inputs in form order.
func Fields() []Field {
	return []Field{FieldName, FieldCompany, FieldEmail}
}

// ParseField maps a form input name to a Field.
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldName:
		return FieldName, nil
	case FieldCompany:
		return FieldCompany, nil
	case FieldEmail:
		return FieldEmail, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func contactValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ContactCollector holds the contact form values. Updates are free text;
// validation only happens in Validate.
type ContactCollector struct {
	info model.ContactInfo
}

// Update sets one field.
func (c *ContactCollector) Update(field Field, value string) error {
	switch field {
	case FieldName:
		c.info.Name = value
	case FieldCompany:
		c.info.Company = value
	case FieldEmail:
		c.info.Email = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Value returns the raw value of field.
func (c *ContactCollector) Value(field Field) string {
	switch field {
	case FieldName:
		return c.info.Name
	case FieldCompany:
		return c.info.Company
	case FieldEmail:
		return c.info.Email
	}
	return ""
}

// Contact returns the raw values as entered.
func (c *ContactCollector) Contact() model.ContactInfo {
	return c.info
}

// Validate checks the trimmed values and returns them, or a *ValidationError
// naming every offending field.
func (c *ContactCollector) Validate() (model.ContactInfo, error) {
	info := c.info.Trimmed()
	err := contactValidator().Struct(info)
	if err == nil {
		return info, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.ContactInfo{}, fmt.Errorf("wizard: validate contact: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   Field(fe.Field()),
			Rule:    fe.Tag(),
			Message: ruleMessage(fe.Tag()),
		})
	}
	return model.ContactInfo{}, out
}

func ruleMessage(rule string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

var fieldRules = map[Field]string{
	FieldName:    "required",
	FieldCompany: "required",
	FieldEmail:   "required,email",
}

// ValidateField checks a single value with the rules Validate applies, for
// prompts that validate as the visitor types. It returns a *ValidationError
// or nil.
func ValidateField(field Field, value string) error {
	rules, ok := fieldRules[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	err := contactValidator().Var(strings.TrimSpace(value), rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("wizard: validate %s: %w", field, err)
	}
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Rule:    verrs[0].Tag(),
		Message: ruleMessage(verrs[0].Tag()),
	}}}
}
