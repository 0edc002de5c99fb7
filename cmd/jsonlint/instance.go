package main

import (
	"fmt"
	"os"

	schemaerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/document"
)

// readInstance decodes a JSON or YAML document. Syntax errors are reported
// as a validation list so they print like validation failures.
func readInstance(path string) (instance any, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close document %s: %w", path, closeErr)
		}
	}()

	instance, err = document.Decode(f, document.SyntaxFor(path))
	if err != nil {
		return nil, schemaerrors.ValidationList{
			schemaerrors.NewValidationf(schemaerrors.ErrJSONParse, "", "%s: %v", path, err),
		}
	}
	return instance, nil
}
