package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jacoelho/jsonschema/internal/document"
	"github.com/jacoelho/jsonschema/internal/format"
)

const addressSchema = `{
  "$schema": "http://json-schema.org/draft-2020-12/schema",
  "type": "object",
  "properties": {
    "address": {
      "type": "string",
      "anyOf": [
        {"format": "ipv4"},
        {"format": "ipv6"}
      ]
    }
  },
  "required": ["address"]
}`

func decode(t *testing.T, src string) any {
	t.Helper()
	doc, err := document.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	return doc
}

func TestCompileAddressSchema(t *testing.T) {
	got, err := Compile(decode(t, addressSchema), Config{ValidateFormats: true})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := &Node{
		Types:    TypeObject,
		Required: []string{"address"},
		Properties: []Property{{
			Name: "address",
			Node: &Node{
				Location: "/properties/address",
				Types:    TypeString,
				AnyOf: []*Node{
					{Location: "/properties/address/anyOf/0", Format: "ipv4", CheckFormat: true},
					{Location: "/properties/address/anyOf/1", Format: "ipv6", CheckFormat: true},
				},
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileFormatsAsAnnotations(t *testing.T) {
	got, err := Compile(decode(t, `{"format": "not-registered"}`), Config{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got.Format != "not-registered" || got.CheckFormat {
		t.Fatalf("node = %+v, want unchecked format annotation", got)
	}
}

func TestCompileUnknownFormat(t *testing.T) {
	doc := decode(t, `{"properties": {"mac": {"format": "mac-address"}}}`)

	core, logs := observer.New(zap.DebugLevel)
	got, err := Compile(doc, Config{ValidateFormats: true, IgnoreUnknownFormats: true, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("Compile(ignore) error = %v", err)
	}
	if got.Properties[0].Node.CheckFormat {
		t.Fatalf("unknown format bound as assertion")
	}
	if n := logs.FilterMessage("ignoring unknown format").Len(); n != 1 {
		t.Fatalf("debug log entries = %d, want 1", n)
	}

	_, err = Compile(doc, Config{ValidateFormats: true})
	if err == nil {
		t.Fatalf("Compile(strict) error = nil, want unknown format")
	}
	if !format.IsUnknownFormat(err) {
		t.Fatalf("IsUnknownFormat(%v) = false, want true", err)
	}
	if !strings.HasPrefix(err.Error(), "/properties/mac/format: ") {
		t.Fatalf("error %q lacks keyword location", err)
	}
}

func TestCompileCustomRegistry(t *testing.T) {
	reg := format.NewRegistry()
	if err := reg.Register("even", func(string) error { return nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := Compile(decode(t, `{"anyOf": [{"format": "even"}]}`), Config{Formats: reg, ValidateFormats: true})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !got.AnyOf[0].CheckFormat {
		t.Fatalf("custom format not bound")
	}
}

func TestCompileBooleanSchemas(t *testing.T) {
	got, err := Compile(decode(t, `{"properties": {"yes": true, "no": false}}`), Config{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := []Property{
		{Name: "no", Node: &Node{Location: "/properties/no", False: true}},
		{Name: "yes", Node: &Node{Location: "/properties/yes"}},
	}
	if diff := cmp.Diff(want, got.Properties); diff != "" {
		t.Fatalf("Properties mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "not a schema", src: `"ipv4"`, want: "/: schema must be an object or boolean"},
		{name: "unknown type", src: `{"type": "text"}`, want: `/type: unknown type "text"`},
		{name: "empty type list", src: `{"type": []}`, want: "/type: must not be empty"},
		{name: "duplicate type", src: `{"type": ["string", "string"]}`, want: `/type: duplicate type "string"`},
		{name: "numeric type", src: `{"type": 1}`, want: "/type: must be a string or array"},
		{name: "required not array", src: `{"required": "address"}`, want: "/required: must be an array"},
		{name: "duplicate required", src: `{"required": ["a", "a"]}`, want: `/required: duplicate property "a"`},
		{name: "properties not object", src: `{"properties": []}`, want: "/properties: must be an object"},
		{name: "empty anyOf", src: `{"anyOf": []}`, want: "/anyOf: must not be empty"},
		{name: "anyOf not array", src: `{"anyOf": {}}`, want: "/anyOf: must be an array"},
		{name: "bad branch", src: `{"anyOf": [{"type": "ip"}]}`, want: `/anyOf/0/type: unknown type "ip"`},
		{name: "format not string", src: `{"format": 4}`, want: "/format: must be a string"},
		{name: "schema not string", src: `{"$schema": 7}`, want: "/$schema: must be a string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(decode(t, tc.src), Config{})
			if err == nil {
				t.Fatalf("Compile() error = nil, want %q", tc.want)
			}
			if !strings.HasPrefix(err.Error(), tc.want) {
				t.Fatalf("Compile() error = %q, want prefix %q", err, tc.want)
			}
		})
	}
}

func TestDialect(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "https://json-schema.org/draft/2020-12/schema", want: true},
		{id: "https://json-schema.org/draft/2020-12/schema#", want: true},
		{id: "http://json-schema.org/draft-2020-12/schema", want: true},
		{id: "http://json-schema.org/draft-07/schema#", want: false},
		{id: "json-schema.org/draft/2020-12/schema", want: false},
	}
	for _, tc := range tests {
		if got := IsDraft202012(tc.id); got != tc.want {
			t.Fatalf("IsDraft202012(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}

	_, err := Compile(decode(t, `{"$schema": "http://json-schema.org/draft-07/schema#"}`), Config{})
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Fatalf("Compile(draft-07) error = %v, want ErrUnsupportedDialect", err)
	}
}

func TestTypeSet(t *testing.T) {
	set := TypeString | TypeNull
	if !set.Allows("x") || !set.Allows(nil) {
		t.Fatalf("%v rejects string or null", set)
	}
	if set.Allows(float64(1)) {
		t.Fatalf("%v allows number", set)
	}
	if !TypeNumber.Allows(float64(2)) {
		t.Fatalf("number rejects integer")
	}
	if !TypeInteger.Allows(float64(1e19)) {
		t.Fatalf("integer rejects 1e19")
	}
	if TypeInteger.Allows(2.5) {
		t.Fatalf("integer allows 2.5")
	}
	if !TypeSet(0).Allows(map[string]any{}) {
		t.Fatalf("empty set rejects object")
	}
	if got, want := set.String(), "null or string"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
