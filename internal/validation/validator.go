// Package validation checks request payloads with go-playground/validator
// and reports the first failure as an apperror validation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/apperror"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report JSON field names so messages match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Check validates s and returns every failed rule in struct field order.
func Check(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, e := range validationErrs {
		out = append(out, FieldError{
			Field:   e.Field(),
			Message: message(e),
		})
	}
	return out
}

// Validate returns nil when s passes, otherwise a validation error carrying
// the message of the first failed field.
func Validate(s any) error {
	fieldErrs := Check(s)
	if len(fieldErrs) == 0 {
		return nil
	}
	return apperror.Validation(fieldErrs[0].Message)
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ltefield":
		return fmt.Sprintf("%s exceeds %s", field, lowerFirst(e.Param()))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// lowerFirst turns a Go field name used as a rule parameter into its JSON form.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
