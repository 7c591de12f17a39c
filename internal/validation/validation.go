// Package validation wraps go-playground/validator and turns its failures
// into the field-level error list returned to API clients.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MessageProvider is implemented by request types that supply their own
// client-facing message for a failed rule. An empty message falls back to
// the generic one.
type MessageProvider interface {
	ValidationMessage(field, tag string) string
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Error lists every field that failed validation.
type Error struct {
	Errors []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// NewError builds a validation error for a single field.
func NewError(field, message string, value any) *Error {
	return &Error{Errors: []FieldError{{Field: field, Message: message, Value: value}}}
}

// Struct validates s against its `validate` tags. It returns *Error when one
// or more fields are invalid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	provider, _ := s.(MessageProvider)
	out := &Error{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg := ""
		if provider != nil {
			msg = provider.ValidationMessage(fe.Field(), fe.Tag())
		}
		if msg == "" {
			msg = msgForTag(fe)
		}
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Message: msg,
			Value:   valueOf(fe.Value()),
		})
	}
	return out
}

// valueOf unwraps pointers so clients see the submitted value, or null.
func valueOf(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	if k := rv.Kind(); k == reflect.Float32 || k == reflect.Float64 {
		return rv.Float()
	}
	return rv.Interface()
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s' validation", fe.Field(), fe.Tag())
	}
}
