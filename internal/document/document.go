// Package document decodes JSON and YAML documents into the generic value
// tree consumed by schema compilation and validation: map[string]any,
// []any, string, float64, bool and nil.
package document

import (
	"fmt"
	"math"
	"io"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Syntax identifies the encoding of a document.
type Syntax uint8

const (
	SyntaxJSON Syntax = iota
	SyntaxYAML
)

// SyntaxFor picks the decoder for a file name by extension.
// Anything that is not .yaml or .yml is treated as JSON.
func SyntaxFor(name string) Syntax {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return SyntaxYAML
	default:
		return SyntaxJSON
	}
}

// Decode reads a document of the given syntax.
func Decode(r io.Reader, syntax Syntax) (any, error) {
	if syntax == SyntaxYAML {
		return DecodeYAML(r)
	}
	return DecodeJSON(r)
}

// DecodeJSON reads a single JSON value.
func DecodeJSON(r io.Reader) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("decode json: nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// DecodeYAML reads a single YAML document and normalizes it to JSON-shaped values.
func DecodeYAML(r io.Reader) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("decode yaml: nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return Normalize(v)
}

// Normalize converts decoded values into the JSON data model. Map keys
// become strings and every numeric type becomes float64.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case float32:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

// TypeName returns the JSON type name of a normalized value.
func TypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return "integer"
		}
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
