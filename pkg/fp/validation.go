package fp

import (
	"errors"
	"fmt"
	"strings"
)

// Validator checks a value and returns an error if it is invalid.
type Validator[T any] func(T) error

// ValidationError is a single problem with a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate runs every validator against value and collects all failures.
func Validate[T any](value T, validators ...Validator[T]) Result[T] {
	var errs ValidationErrors
	for _, v := range validators {
		err := v(value)
		if err == nil {
			continue
		}
		var ve ValidationError
		var ves ValidationErrors
		switch {
		case errors.As(err, &ves):
			errs = append(errs, ves...)
		case errors.As(err, &ve):
			errs = append(errs, ve)
		default:
			errs = append(errs, ValidationError{Message: err.Error()})
		}
	}
	if errs.HasErrors() {
		return Failure[T](errs)
	}
	return Success(value)
}

// Required validates that a string is not blank.
func Required(field string) Validator[string] {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return ValidationError{Field: field, Message: "is required"}
		}
		return nil
	}
}
