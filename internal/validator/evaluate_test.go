package validator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/document"
	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/internal/xiter"
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

func compile(t *testing.T, src string, validateFormats bool) *schema.Node {
	t.Helper()
	doc, err := document.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	node, err := schema.Compile(doc, schema.Config{ValidateFormats: validateFormats, IgnoreUnknownFormats: true})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return node
}

type finding struct {
	Code    string
	Path    string
	Keyword string
}

func findings(o *Outcome) []finding {
	var out []finding
	for v := range o.Errors() {
		out = append(out, finding{Code: v.Code, Path: v.Path, Keyword: v.Keyword})
	}
	return out
}

func TestEvaluateAddresses(t *testing.T) {
	node := compile(t, addressSchema, true)
	ev := New(Config{ValidateFormats: true})

	tests := []struct {
		address string
		ok      bool
	}{
		{address: "2001:0db8:85a3:0000:0000:8a2e:0370:7334", ok: true},
		{address: "2001:db8::1", ok: true},
		{address: "::1", ok: true},
		{address: "::", ok: true},
		{address: "192.0.2.1", ok: true},
		{address: "256.0.0.1", ok: false},
		{address: "2001:0db8:85a3:0000:0000:8a2e:0370:7334:5678", ok: false},
		{address: "2001:0db8:85a3:0000:0000:8a2e:0370:zzzz", ok: false},
		{address: "2001:0db8:85a3:0000:0000:8a2e:0370", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.address, func(t *testing.T) {
			out := ev.Evaluate(node, map[string]any{"address": tc.address})
			if out.OK() != tc.ok {
				t.Fatalf("Evaluate(%q).OK() = %v, want %v (errors: %v)", tc.address, out.OK(), tc.ok, findings(out))
			}
			if tc.ok && xiter.Count(out.Errors()) != 0 {
				t.Fatalf("passing outcome yielded errors: %v", findings(out))
			}
		})
	}
}

func TestAnyOfAggregatesBranchFailures(t *testing.T) {
	node := compile(t, addressSchema, true)
	out := New(Config{ValidateFormats: true}).Evaluate(node, map[string]any{
		"address": "2001:0db8:85a3:0000:0000:8a2e:0370:7334:5678",
	})

	want := []finding{
		{Code: string(errors.ErrAnyOf), Path: "/address", Keyword: "/properties/address/anyOf"},
		{Code: string(errors.ErrFormatInvalidCharacter), Path: "/address", Keyword: "/properties/address/anyOf/0/format"},
		{Code: string(errors.ErrFormatTooManySegments), Path: "/address", Keyword: "/properties/address/anyOf/1/format"},
	}
	if diff := cmp.Diff(want, findings(out)); diff != "" {
		t.Fatalf("Errors() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnyOfEvaluatesEveryBranch(t *testing.T) {
	node := compile(t, `{"anyOf": [{"format": "ipv6"}, {"format": "ipv4"}, {"type": "string"}]}`, true)
	out := New(Config{ValidateFormats: true}).Evaluate(node, "::1")
	if !out.OK() {
		t.Fatalf("OK() = false, want true")
	}

	var anyOf *Outcome
	for child := range out.Children() {
		if child.Keyword() == "/anyOf" {
			anyOf = child
		}
	}
	if anyOf == nil {
		t.Fatalf("no anyOf outcome")
	}
	var results []bool
	for branch := range anyOf.Children() {
		results = append(results, branch.OK())
	}
	if diff := cmp.Diff([]bool{true, false, true}, results); diff != "" {
		t.Fatalf("branch results mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatsDisabled(t *testing.T) {
	node := compile(t, addressSchema, false)
	ev := New(Config{})
	for _, address := range []string{"256.0.0.1", "2001:0db8:85a3:0000:0000:8a2e:0370:zzzz", "not an address"} {
		if out := ev.Evaluate(node, map[string]any{"address": address}); !out.OK() {
			t.Fatalf("Evaluate(%q) failed with formats disabled: %v", address, findings(out))
		}
	}

	// A schema compiled with assertions still passes when the evaluator disables them.
	asserted := compile(t, addressSchema, true)
	if out := ev.Evaluate(asserted, map[string]any{"address": "zzzz"}); !out.OK() {
		t.Fatalf("Evaluate() failed with evaluator formats disabled: %v", findings(out))
	}
}

func TestUnknownFormatIgnored(t *testing.T) {
	node := compile(t, `{"format": "mac-address"}`, true)
	if out := New(Config{ValidateFormats: true}).Evaluate(node, "zz"); !out.OK() {
		t.Fatalf("unknown format failed validation: %v", findings(out))
	}
}

func TestFormatIgnoresNonStrings(t *testing.T) {
	node := compile(t, `{"format": "ipv4"}`, true)
	ev := New(Config{ValidateFormats: true})
	for _, v := range []any{float64(4), nil, true, []any{"x"}, map[string]any{}} {
		if out := ev.Evaluate(node, v); !out.OK() {
			t.Fatalf("Evaluate(%v) failed: %v", v, findings(out))
		}
	}
}

func TestEvaluateObjectKeywords(t *testing.T) {
	node := compile(t, addressSchema, true)
	ev := New(Config{ValidateFormats: true})

	tests := []struct {
		name     string
		instance any
		want     []finding
	}{
		{
			name:     "missing address",
			instance: map[string]any{},
			want:     []finding{{Code: "required", Path: "", Keyword: "/required"}},
		},
		{
			name:     "not an object",
			instance: "::1",
			want:     []finding{{Code: "type", Path: "", Keyword: "/type"}},
		},
		{
			name:     "address not a string",
			instance: map[string]any{"address": float64(1)},
			want:     []finding{{Code: "type", Path: "/address", Keyword: "/properties/address/type"}},
		},
		{
			name:     "extra properties allowed",
			instance: map[string]any{"address": "::", "port": float64(22)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := findings(ev.Evaluate(node, tc.instance))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Errors() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFalseSchema(t *testing.T) {
	node := compile(t, `{"properties": {"deprecated": false}}`, false)
	out := New(Config{}).Evaluate(node, map[string]any{"deprecated": "x"})
	want := []finding{{Code: "false-schema", Path: "/deprecated", Keyword: "/properties/deprecated"}}
	if diff := cmp.Diff(want, findings(out)); diff != "" {
		t.Fatalf("Errors() mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	node := compile(t, addressSchema, true)
	ev := New(Config{ValidateFormats: true})
	instance := map[string]any{"address": "2001:0db8:85a3:0000:0000:8a2e:0370"}

	first := ev.Evaluate(node, instance)
	second := ev.Evaluate(node, instance)
	if first.OK() != second.OK() {
		t.Fatalf("OK() differs between runs")
	}
	a, b := findings(first), findings(second)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("Errors() differs between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a, findings(first)); diff != "" {
		t.Fatalf("Errors() not restartable (-first +again):\n%s", diff)
	}
}

func TestErrorsEarlyStop(t *testing.T) {
	node := compile(t, addressSchema, true)
	out := New(Config{ValidateFormats: true}).Evaluate(node, map[string]any{"address": "zzzz"})
	n := 0
	for range out.Errors() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("early stop yielded %d, want 1", n)
	}
}

func TestEvaluatorSnapshotsMutableRegistry(t *testing.T) {
	reg := format.NewRegistry()
	if err := reg.Register("even", func(s string) error {
		if len(s)%2 != 0 {
			return fmt.Errorf("odd length")
		}
		return nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	node, err := schema.Compile(map[string]any{"format": "even"}, schema.Config{Formats: reg, ValidateFormats: true})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	ev := New(Config{Formats: reg, ValidateFormats: true})
	if reg.Frozen() {
		t.Fatalf("New() froze the caller's registry")
	}
	if err := reg.Register("even", func(string) error { return nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if out := ev.Evaluate(node, "abc"); out.OK() {
		t.Fatalf("Evaluate(abc) OK = true, want the checker captured at New")
	}
}
