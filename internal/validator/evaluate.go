package validator

import (
	"fmt"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/document"
	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/jsonpointer"
	"github.com/jacoelho/jsonschema/internal/schema"
)

// Config controls evaluation.
type Config struct {
	Formats *format.Registry
	// ValidateFormats surfaces format failures as validation failures.
	ValidateFormats bool
}

// Evaluator evaluates instances against compiled schemas. It holds no
// per-call state and is safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// New returns an evaluator. A nil registry selects format.Default; a
// mutable registry is snapshotted so later registrations do not leak in.
func New(cfg Config) *Evaluator {
	if cfg.Formats == nil {
		cfg.Formats = format.Default()
	}
	if !cfg.Formats.Frozen() {
		cfg.Formats = cfg.Formats.Clone().Freeze()
	}
	return &Evaluator{cfg: cfg}
}

// Evaluate validates instance against node, starting at the document root.
func (e *Evaluator) Evaluate(node *schema.Node, instance any) *Outcome {
	return e.eval(node, instance, "")
}

func (e *Evaluator) eval(node *schema.Node, instance any, path string) *Outcome {
	var parts []*Outcome

	if node.False {
		parts = append(parts, leaf(errors.Validation{
			Code:    string(errors.ErrFalseSchema),
			Message: "schema does not allow any value",
			Path:    path,
			Keyword: node.Location,
		}))
	}

	if !node.Types.Allows(instance) {
		parts = append(parts, leaf(errors.Validation{
			Code:     string(errors.ErrType),
			Message:  fmt.Sprintf("value must be %s", node.Types),
			Path:     path,
			Keyword:  jsonpointer.Append(node.Location, "type"),
			Expected: node.Types.Names(),
			Actual:   document.TypeName(instance),
		}))
	}

	if obj, ok := instance.(map[string]any); ok {
		for _, name := range node.Required {
			if _, present := obj[name]; present {
				continue
			}
			parts = append(parts, leaf(errors.Validation{
				Code:    string(errors.ErrRequired),
				Message: fmt.Sprintf("missing required property %q", name),
				Path:    path,
				Keyword: jsonpointer.Append(node.Location, "required"),
			}))
		}
		for _, prop := range node.Properties {
			value, present := obj[prop.Name]
			if !present {
				continue
			}
			parts = append(parts, e.eval(prop.Node, value, jsonpointer.Append(path, prop.Name)))
		}
	}

	if out := e.checkFormat(node, instance, path); out != nil {
		parts = append(parts, out)
	}

	if len(node.AnyOf) > 0 {
		parts = append(parts, e.anyOf(node, instance, path))
	}

	return group(path, node.Location, parts)
}

// checkFormat returns nil when the format keyword does not apply.
// Non-string instances and annotation-only formats always pass.
func (e *Evaluator) checkFormat(node *schema.Node, instance any, path string) *Outcome {
	if node.Format == "" || !node.CheckFormat || !e.cfg.ValidateFormats {
		return nil
	}
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	err := e.cfg.Formats.Validate(node.Format, s)
	if err == nil || format.IsUnknownFormat(err) {
		return nil
	}
	kind, _ := format.KindOf(err)
	return leaf(errors.Validation{
		Code:     string(kind.Code()),
		Message:  err.Error(),
		Path:     path,
		Keyword:  jsonpointer.Append(node.Location, "format"),
		Expected: []string{node.Format},
		Actual:   s,
	})
}

// anyOf evaluates every branch so the outcome carries complete diagnostics.
// It passes when at least one branch passes.
func (e *Evaluator) anyOf(node *schema.Node, instance any, path string) *Outcome {
	keyword := jsonpointer.Append(node.Location, "anyOf")
	branches := make([]*Outcome, len(node.AnyOf))
	passed := 0
	for i, branch := range node.AnyOf {
		branches[i] = e.eval(branch, instance, path)
		if branches[i].OK() {
			passed++
		}
	}
	out := &Outcome{path: path, keyword: keyword, children: branches, ok: passed > 0}
	if !out.ok {
		out.failure = &errors.Validation{
			Code:    string(errors.ErrAnyOf),
			Message: fmt.Sprintf("value does not match any of %d alternatives", len(branches)),
			Path:    path,
			Keyword: keyword,
		}
	}
	return out
}
