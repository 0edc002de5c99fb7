package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a validation failure class.
// Keyword failures use the JSON Schema keyword name as their code.
type ErrorCode string

const (
	// ErrSchemaNotLoaded indicates validation was attempted without a compiled schema.
	ErrSchemaNotLoaded ErrorCode = "schema-not-loaded"
	// ErrJSONParse indicates the instance document could not be decoded.
	ErrJSONParse ErrorCode = "json-parse-error"

	// ErrFalseSchema indicates the instance was checked against the false schema.
	ErrFalseSchema ErrorCode = "false-schema"
	// ErrType indicates the instance type is not allowed by "type".
	ErrType ErrorCode = "type"
	// ErrRequired indicates a property listed in "required" is missing.
	ErrRequired ErrorCode = "required"
	// ErrAnyOf indicates no "anyOf" alternative accepted the instance.
	ErrAnyOf ErrorCode = "anyOf"

	// ErrFormatMalformed indicates a format value is structurally malformed.
	ErrFormatMalformed ErrorCode = "format-malformed"
	// ErrFormatOutOfRange indicates a numeric component is out of range.
	ErrFormatOutOfRange ErrorCode = "format-out-of-range"
	// ErrFormatTooManySegments indicates an address has too many groups.
	ErrFormatTooManySegments ErrorCode = "format-too-many-segments"
	// ErrFormatTooFewSegments indicates an address has too few groups.
	ErrFormatTooFewSegments ErrorCode = "format-too-few-segments"
	// ErrFormatInvalidCharacter indicates a character outside the format alphabet.
	ErrFormatInvalidCharacter ErrorCode = "format-invalid-character"
	// ErrFormatUnknown indicates a format name with no registered checker.
	ErrFormatUnknown ErrorCode = "format-unknown"
)

// Validation describes a single validation failure with the instance location
// (a JSON pointer) and the schema keyword location that produced it.
//
//nolint:errname // public API name uses JSON Schema domain term.
type Validation struct {
	Code     string
	Message  string
	Path     string
	Keyword  string
	Actual   string
	Expected []string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Error formats the validation for display, including code, message, and context.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", v.Code, v.Message)
	if v.Path != "" {
		fmt.Fprintf(&b, " at %s", v.Path)
	}
	if v.Keyword != "" {
		fmt.Fprintf(&b, " (keyword: %s)", v.Keyword)
	}
	if len(v.Expected) > 0 {
		fmt.Fprintf(&b, " (expected: %s)", strings.Join(v.Expected, ", "))
	}
	if v.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", v.Actual)
	}
	return b.String()
}

// NewValidation builds a Validation with a code, message, and optional path.
func NewValidation(code ErrorCode, msg, path string) Validation {
	return Validation{Code: string(code), Message: msg, Path: path}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, path, format string, args ...any) Validation {
	return NewValidation(code, fmt.Sprintf(format, args...), path)
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
