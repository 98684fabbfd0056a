package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns binding errors into field -> message pairs.
// Errors that did not come from the validator are returned under "body".
func FormatValidationError(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["body"] = "malformed request body"
		return fields
	}

	for _, fe := range validationErrors {
		field := lowerFirst(fe.Field())

		switch fe.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		case "gt":
			fields[field] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return fields
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
