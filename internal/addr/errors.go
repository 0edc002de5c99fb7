package addr

import "fmt"

// ParseError reports why an address literal was rejected.
type ParseError struct {
	Detail string
	Kind   ErrKind
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// ErrKind identifies an address parse failure category.
type ErrKind uint8

const (
	Malformed ErrKind = iota
	OutOfRange
	TooManySegments
	TooFewSegments
	InvalidCharacter
)

// String returns a stable label for the error kind.
func (k ErrKind) String() string {
	switch k {
	case OutOfRange:
		return "out of range"
	case TooManySegments:
		return "too many segments"
	case TooFewSegments:
		return "too few segments"
	case InvalidCharacter:
		return "invalid character"
	default:
		return "malformed"
	}
}

func errorf(kind ErrKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
