package validator

import (
	"iter"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/xiter"
)

// Outcome is the immutable result of evaluating one instance location
// against one schema node or keyword. Outcomes form a tree: a node outcome
// holds one child per evaluated keyword, property or anyOf branch.
type Outcome struct {
	failure  *errors.Validation
	path     string
	keyword  string
	children []*Outcome
	ok       bool
}

// OK reports whether the instance satisfied the schema at this location.
func (o *Outcome) OK() bool {
	return o == nil || o.ok
}

// Path returns the instance location as a JSON pointer.
func (o *Outcome) Path() string {
	if o == nil {
		return ""
	}
	return o.path
}

// Keyword returns the schema location that produced the outcome.
func (o *Outcome) Keyword() string {
	if o == nil {
		return ""
	}
	return o.keyword
}

// Children yields nested outcomes, including branches that failed inside a
// passing anyOf.
func (o *Outcome) Children() iter.Seq[*Outcome] {
	if o == nil {
		return xiter.Slice[*Outcome](nil)
	}
	return xiter.Slice(o.children)
}

// Errors yields the failures that make this outcome invalid. The sequence is
// recomputed from the stored tree on every iteration. Failing children of
// an outcome that is OK are not reported.
func (o *Outcome) Errors() iter.Seq[errors.Validation] {
	return func(yield func(errors.Validation) bool) {
		o.walkErrors(yield)
	}
}

func (o *Outcome) walkErrors(yield func(errors.Validation) bool) bool {
	if o.OK() {
		return true
	}
	if o.failure != nil && !yield(*o.failure) {
		return false
	}
	for _, child := range o.children {
		if !child.walkErrors(yield) {
			return false
		}
	}
	return true
}

func leaf(v errors.Validation) *Outcome {
	return &Outcome{path: v.Path, keyword: v.Keyword, failure: &v}
}

func group(path, keyword string, children []*Outcome) *Outcome {
	ok := true
	for _, child := range children {
		if !child.OK() {
			ok = false
			break
		}
	}
	return &Outcome{path: path, keyword: keyword, children: children, ok: ok}
}
