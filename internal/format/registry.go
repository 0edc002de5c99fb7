package format

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/jacoelho/jsonschema/internal/xiter"
)

// Checker reports whether a string conforms to a format. A nil error means
// the value is valid. Checkers must be pure.
type Checker func(string) error

// ErrFrozen is returned when registering into a frozen registry.
var ErrFrozen = errors.New("format registry is frozen")

// Registry maps format names to checkers.
// A frozen registry is read-only and safe for concurrent use.
type Registry struct {
	checkers map[string]Checker
	frozen   bool
}

// NewRegistry returns an empty, mutable registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// Register binds name to checker, replacing any previous binding.
func (r *Registry) Register(name string, checker Checker) error {
	if r == nil {
		return fmt.Errorf("register format %q: nil registry", name)
	}
	if r.frozen {
		return fmt.Errorf("register format %q: %w", name, ErrFrozen)
	}
	if name == "" {
		return fmt.Errorf("register format: empty name")
	}
	if checker == nil {
		return fmt.Errorf("register format %q: nil checker", name)
	}
	r.checkers[name] = checker
	return nil
}

// Lookup returns the checker registered under name.
func (r *Registry) Lookup(name string) (Checker, bool) {
	if r == nil {
		return nil, false
	}
	checker, ok := r.checkers[name]
	return checker, ok
}

// Validate checks value against the named format. It returns nil when the
// value conforms, an *Error of KindUnknownFormat when no checker is
// registered, and an *Error describing the failure otherwise.
func (r *Registry) Validate(name, value string) error {
	checker, ok := r.Lookup(name)
	if !ok {
		return &Error{Format: name, Value: value, Kind: KindUnknownFormat}
	}
	err := checker(value)
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		out := *fe
		if out.Format == "" {
			out.Format = name
		}
		if out.Value == "" {
			out.Value = value
		}
		return &out
	}
	return &Error{Format: name, Value: value, Kind: KindMalformed, Detail: err.Error()}
}

// Names yields the registered format names in sorted order.
func (r *Registry) Names() iter.Seq[string] {
	if r == nil {
		return xiter.Slice[string](nil)
	}
	return xiter.SortedKeys(r.checkers)
}

// Clone returns a mutable copy of the registry.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return NewRegistry()
	}
	return &Registry{checkers: maps.Clone(r.checkers)}
}

// Freeze marks the registry read-only and returns it.
func (r *Registry) Freeze() *Registry {
	if r != nil {
		r.frozen = true
	}
	return r
}

// Frozen reports whether the registry rejects further registrations.
func (r *Registry) Frozen() bool {
	return r != nil && r.frozen
}

var defaultRegistry = newDefaultRegistry()

// Default returns the frozen process-wide registry of built-in formats.
func Default() *Registry {
	return defaultRegistry
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	builtins := map[string]Checker{
		"ipv4":         IPv4,
		"ipv6":         IPv6,
		"uuid":         UUID,
		"hostname":     Hostname,
		"idn-hostname": IDNHostname,
	}
	for name, checker := range builtins {
		if err := r.Register(name, checker); err != nil {
			panic(err)
		}
	}
	return r.Freeze()
}
