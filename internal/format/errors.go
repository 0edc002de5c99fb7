package format

import (
	"errors"
	"fmt"

	schemaerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/addr"
)

// Kind identifies why a value failed its format check.
type Kind uint8

const (
	KindMalformed Kind = iota
	KindOutOfRange
	KindTooManySegments
	KindTooFewSegments
	KindInvalidCharacter
	KindUnknownFormat
)

// String returns a stable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out of range"
	case KindTooManySegments:
		return "too many segments"
	case KindTooFewSegments:
		return "too few segments"
	case KindInvalidCharacter:
		return "invalid character"
	case KindUnknownFormat:
		return "unknown format"
	default:
		return "malformed"
	}
}

// Code returns the public error code for the kind.
func (k Kind) Code() schemaerrors.ErrorCode {
	switch k {
	case KindOutOfRange:
		return schemaerrors.ErrFormatOutOfRange
	case KindTooManySegments:
		return schemaerrors.ErrFormatTooManySegments
	case KindTooFewSegments:
		return schemaerrors.ErrFormatTooFewSegments
	case KindInvalidCharacter:
		return schemaerrors.ErrFormatInvalidCharacter
	case KindUnknownFormat:
		return schemaerrors.ErrFormatUnknown
	default:
		return schemaerrors.ErrFormatMalformed
	}
}

// Error describes a format check failure or a lookup of an unregistered format.
type Error struct {
	Format string
	Value  string
	Detail string
	Kind   Kind
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindUnknownFormat {
		return fmt.Sprintf("unknown format %q", e.Format)
	}
	msg := fmt.Sprintf("%q is not a valid %s: %s", e.Value, e.Format, e.Kind)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// IsUnknownFormat reports whether err was caused by an unregistered format name.
func IsUnknownFormat(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindUnknownFormat
}

// KindOf returns the failure kind carried by err.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if !errors.As(err, &fe) {
		return 0, false
	}
	return fe.Kind, true
}

func fromParseError(err *addr.ParseError) *Error {
	var kind Kind
	switch err.Kind {
	case addr.OutOfRange:
		kind = KindOutOfRange
	case addr.TooManySegments:
		kind = KindTooManySegments
	case addr.TooFewSegments:
		kind = KindTooFewSegments
	case addr.InvalidCharacter:
		kind = KindInvalidCharacter
	default:
		kind = KindMalformed
	}
	return &Error{Kind: kind, Detail: err.Detail}
}
