package annotations

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Common validation rules shared by the tag handlers

var (
	operationIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)
	parameterRegex   = regexp.MustCompile(`^[A-Za-z0-9_.\-\[\]]+$`)
)

// parameterTypes are the values accepted by @type(...)
var parameterTypes = []interface{}{"string", "integer", "number", "boolean", "array", "object"}

// ValidateStatusCode validates a 3-digit HTTP status code
func ValidateStatusCode(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.Match(statusRegex).Error("must be a 3-digit HTTP status code"),
	)
}

// ValidateOperationID validates an @operationId value
func ValidateOperationID(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.Match(operationIDRegex).Error("must be a single identifier"),
	)
}

// ValidateParameterName validates the name of a @param* tag
func ValidateParameterName(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.Match(parameterRegex).Error("contains invalid characters"),
	)
}

// ValidateParameterType validates the argument of @type(...)
func ValidateParameterType(v string) error {
	return validation.Validate(strings.ToLower(v),
		validation.In(parameterTypes...).Error("must be one of string, integer, number, boolean, array or object"),
	)
}
