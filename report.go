package jsonschema

import (
	"iter"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/validator"
	"github.com/jacoelho/jsonschema/internal/xiter"
)

// Report is the immutable result of validating one instance.
type Report struct {
	outcome *validator.Outcome
	failure []errors.Validation
}

func failedReport(v errors.Validation) *Report {
	return &Report{failure: []errors.Validation{v}}
}

// OK reports whether the instance is valid.
func (r *Report) OK() bool {
	return r != nil && len(r.failure) == 0 && r.outcome.OK()
}

// Errors yields the (location, reason) pairs that made the instance invalid.
// The sequence is finite and may be iterated any number of times.
func (r *Report) Errors() iter.Seq[errors.Validation] {
	if r == nil {
		return xiter.Slice[errors.Validation](nil)
	}
	return xiter.Concat(xiter.Slice(r.failure), r.outcome.Errors())
}

// Err returns the failures as an errors.ValidationList, or nil when the
// instance is valid.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	list := errors.ValidationList(xiter.Collect(r.Errors()))
	if len(list) == 0 {
		return errors.ValidationList{errors.NewValidation(errors.ErrSchemaNotLoaded, "schema not loaded", "")}
	}
	return list
}
