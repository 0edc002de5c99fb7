package schema

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/jsonpointer"
	"github.com/jacoelho/jsonschema/internal/xiter"
)

// ErrUnsupportedDialect reports a $schema identifier other than draft 2020-12.
var ErrUnsupportedDialect = errors.New("unsupported dialect")

// Config controls how format keywords are bound during compilation.
type Config struct {
	Formats *format.Registry
	Logger  *zap.Logger
	// ValidateFormats turns format keywords into assertions.
	ValidateFormats bool
	// IgnoreUnknownFormats keeps unregistered formats as annotations when
	// ValidateFormats is set. When false they fail compilation.
	IgnoreUnknownFormats bool
}

type compiler struct {
	cfg Config
	log *zap.Logger
}

// Compile compiles a decoded schema document.
func Compile(doc any, cfg Config) (*Node, error) {
	if cfg.Formats == nil {
		cfg.Formats = format.Default()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if obj, ok := doc.(map[string]any); ok {
		if err := checkDialect(obj); err != nil {
			return nil, err
		}
	}
	c := &compiler{cfg: cfg, log: log}
	return c.compile(doc, "")
}

func checkDialect(obj map[string]any) error {
	raw, ok := obj["$schema"]
	if !ok {
		return nil
	}
	id, ok := raw.(string)
	if !ok {
		return fmt.Errorf("/$schema: must be a string, got %T", raw)
	}
	if !IsDraft202012(id) {
		return fmt.Errorf("/$schema: %w %q", ErrUnsupportedDialect, id)
	}
	return nil
}

// IsDraft202012 reports whether id names the 2020-12 dialect. Both the
// published URI and the "draft-2020-12" spelling are accepted, over http or
// https, with or without an empty fragment.
func IsDraft202012(id string) bool {
	id = strings.TrimSuffix(id, "#")
	rest, ok := strings.CutPrefix(id, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(id, "http://")
	}
	if !ok {
		return false
	}
	return rest == "json-schema.org/draft/2020-12/schema" || rest == "json-schema.org/draft-2020-12/schema"
}

func (c *compiler) compile(doc any, loc string) (*Node, error) {
	switch v := doc.(type) {
	case bool:
		return &Node{Location: loc, False: !v}, nil
	case map[string]any:
		return c.compileObject(v, loc)
	default:
		return nil, fmt.Errorf("%s: schema must be an object or boolean, got %T", display(loc), doc)
	}
}

func (c *compiler) compileObject(obj map[string]any, loc string) (*Node, error) {
	n := &Node{Location: loc}

	if raw, ok := obj["type"]; ok {
		types, err := compileType(raw, jsonpointer.Append(loc, "type"))
		if err != nil {
			return nil, err
		}
		n.Types = types
	}

	if raw, ok := obj["required"]; ok {
		required, err := compileRequired(raw, jsonpointer.Append(loc, "required"))
		if err != nil {
			return nil, err
		}
		n.Required = required
	}

	if raw, ok := obj["properties"]; ok {
		propsLoc := jsonpointer.Append(loc, "properties")
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: must be an object, got %T", propsLoc, raw)
		}
		for name := range xiter.SortedKeys(props) {
			child, err := c.compile(props[name], jsonpointer.Append(propsLoc, name))
			if err != nil {
				return nil, err
			}
			n.Properties = append(n.Properties, Property{Name: name, Node: child})
		}
	}

	if raw, ok := obj["anyOf"]; ok {
		anyOfLoc := jsonpointer.Append(loc, "anyOf")
		branches, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: must be an array, got %T", anyOfLoc, raw)
		}
		if len(branches) == 0 {
			return nil, fmt.Errorf("%s: must not be empty", anyOfLoc)
		}
		for i, branch := range branches {
			child, err := c.compile(branch, jsonpointer.AppendIndex(anyOfLoc, i))
			if err != nil {
				return nil, err
			}
			n.AnyOf = append(n.AnyOf, child)
		}
	}

	if raw, ok := obj["format"]; ok {
		if err := c.bindFormat(n, raw, jsonpointer.Append(loc, "format")); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (c *compiler) bindFormat(n *Node, raw any, loc string) error {
	name, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%s: must be a string, got %T", loc, raw)
	}
	n.Format = name
	if !c.cfg.ValidateFormats {
		return nil
	}
	if _, ok := c.cfg.Formats.Lookup(name); ok {
		n.CheckFormat = true
		return nil
	}
	unknown := &format.Error{Format: name, Kind: format.KindUnknownFormat}
	if !c.cfg.IgnoreUnknownFormats {
		return fmt.Errorf("%s: %w", loc, unknown)
	}
	c.log.Debug("ignoring unknown format", zap.String("format", name), zap.String("location", loc))
	return nil
}

func compileType(raw any, loc string) (TypeSet, error) {
	switch v := raw.(type) {
	case string:
		t, ok := ParseType(v)
		if !ok {
			return 0, fmt.Errorf("%s: unknown type %q", loc, v)
		}
		return t, nil
	case []any:
		if len(v) == 0 {
			return 0, fmt.Errorf("%s: must not be empty", loc)
		}
		var set TypeSet
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return 0, fmt.Errorf("%s: type names must be strings, got %T", loc, item)
			}
			t, ok := ParseType(name)
			if !ok {
				return 0, fmt.Errorf("%s: unknown type %q", loc, name)
			}
			if set&t != 0 {
				return 0, fmt.Errorf("%s: duplicate type %q", loc, name)
			}
			set |= t
		}
		return set, nil
	default:
		return 0, fmt.Errorf("%s: must be a string or array, got %T", loc, raw)
	}
}

func compileRequired(raw any, loc string) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: must be an array, got %T", loc, raw)
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: property names must be strings, got %T", loc, item)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: duplicate property %q", loc, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func display(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}
