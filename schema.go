package jsonschema

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/document"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/internal/validator"
)

// Schema is a compiled schema. It is immutable and safe for concurrent use
// by multiple goroutines.
type Schema struct {
	root      *schema.Node
	evaluator *validator.Evaluator
}

// Compile compiles a decoded schema document made of map[string]any,
// []any, string, float64, bool and nil values.
func Compile(doc any, opts Options) (*Schema, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	doc, err = document.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	root, err := schema.Compile(doc, schema.Config{
		Formats:              resolved.registry,
		Logger:               resolved.logger,
		ValidateFormats:      resolved.validateFormats,
		IgnoreUnknownFormats: resolved.ignoreUnknownFormats,
	})
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{
		root: root,
		evaluator: validator.New(validator.Config{
			Formats:         resolved.registry,
			ValidateFormats: resolved.validateFormats,
		}),
	}, nil
}

// CompileJSON compiles a JSON schema document read from r.
func CompileJSON(r io.Reader, opts Options) (*Schema, error) {
	doc, err := document.DecodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return Compile(doc, opts)
}

// Load compiles a schema file from fsys. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func Load(fsys fs.FS, location string, opts Options) (s *Schema, err error) {
	if fsys == nil {
		return nil, fmt.Errorf("load schema %s: nil fs", location)
	}
	f, err := fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close schema %s: %w", location, closeErr)
		}
	}()

	doc, err := document.Decode(f, document.SyntaxFor(location))
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	s, err = Compile(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return s, nil
}

// LoadFile compiles a schema from a file path.
func LoadFile(path string, opts Options) (*Schema, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path), opts)
}

// Validate validates a decoded instance.
func (s *Schema) Validate(instance any) *Report {
	if s == nil || s.root == nil {
		return failedReport(errors.NewValidation(errors.ErrSchemaNotLoaded, "schema not loaded", ""))
	}
	normalized, err := document.Normalize(instance)
	if err != nil {
		return failedReport(errors.NewValidation(errors.ErrJSONParse, err.Error(), ""))
	}
	return &Report{outcome: s.evaluator.Evaluate(s.root, normalized)}
}

// ValidateJSON decodes a JSON instance from r and validates it.
// Decoding failures are returned as errors; validation failures are in the report.
func (s *Schema) ValidateJSON(r io.Reader) (*Report, error) {
	instance, err := document.DecodeJSON(r)
	if err != nil {
		return nil, errors.ValidationList{errors.NewValidation(errors.ErrJSONParse, err.Error(), "")}
	}
	return s.Validate(instance), nil
}

// ValidateFile validates a JSON or YAML instance file.
func (s *Schema) ValidateFile(path string) (report *Report, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instance %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close instance %s: %w", path, closeErr)
		}
	}()

	instance, err := document.Decode(f, document.SyntaxFor(path))
	if err != nil {
		return nil, errors.ValidationList{errors.NewValidationf(errors.ErrJSONParse, "", "%s: %v", path, err)}
	}
	return s.Validate(instance), nil
}

// ValidateAll validates instances concurrently and returns the reports in
// input order. At most limit validations run at once; limit <= 0 uses
// GOMAXPROCS. The only error is the context's.
func (s *Schema) ValidateAll(ctx context.Context, instances []any, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	reports := make([]*Report, len(instances))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, instance := range instances {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.Validate(instance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
