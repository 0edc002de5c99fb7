package jsonschema

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jacoelho/jsonschema/internal/format"
)

// FormatChecker reports whether a string conforms to a custom format.
// A nil error means the value is valid.
type FormatChecker func(string) error

type boolOption struct {
	value bool
	set   bool
}

func (o boolOption) resolved(def bool) bool {
	if !o.set {
		return def
	}
	return o.value
}

type customFormat struct {
	checker FormatChecker
	name    string
}

// Options configures schema compilation and validation.
// The zero value is valid; methods return modified copies.
type Options struct {
	logger               *zap.Logger
	formats              []customFormat
	validateFormats      boolOption
	ignoreUnknownFormats boolOption
}

type resolvedOptions struct {
	registry             *format.Registry
	logger               *zap.Logger
	validateFormats      bool
	ignoreUnknownFormats bool
}

// NewOptions returns a default, valid options value: formats are
// annotations and unknown formats are ignored.
func NewOptions() Options {
	return Options{}
}

// WithValidateFormats controls whether "format" is asserted.
func (o Options) WithValidateFormats(value bool) Options {
	o.validateFormats = boolOption{value: value, set: true}
	return o
}

// WithIgnoreUnknownFormats controls whether unregistered formats are
// accepted (true, the default) or fail compilation when formats are asserted.
func (o Options) WithIgnoreUnknownFormats(value bool) Options {
	o.ignoreUnknownFormats = boolOption{value: value, set: true}
	return o
}

// WithFormat registers a custom format checker, overriding any built-in
// format of the same name for schemas compiled with these options.
func (o Options) WithFormat(name string, checker FormatChecker) Options {
	o.formats = append(o.formats[:len(o.formats):len(o.formats)], customFormat{name: name, checker: checker})
	return o
}

// WithLogger sets the logger used for compilation diagnostics.
func (o Options) WithLogger(logger *zap.Logger) Options {
	o.logger = logger
	return o
}

// Validate validates option values.
func (o Options) Validate() error {
	_, err := o.withDefaults()
	return err
}

func (o Options) withDefaults() (resolvedOptions, error) {
	registry := format.Default()
	if len(o.formats) > 0 {
		registry = registry.Clone()
		for _, f := range o.formats {
			if f.checker == nil {
				return resolvedOptions{}, fmt.Errorf("format %q: nil checker", f.name)
			}
			if err := registry.Register(f.name, format.Checker(f.checker)); err != nil {
				return resolvedOptions{}, err
			}
		}
		registry.Freeze()
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return resolvedOptions{
		registry:             registry,
		logger:               logger,
		validateFormats:      o.validateFormats.resolved(false),
		ignoreUnknownFormats: o.ignoreUnknownFormats.resolved(true),
	}, nil
}
