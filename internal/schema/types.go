package schema

import (
	"strings"

	"github.com/jacoelho/jsonschema/internal/document"
)

// TypeSet is the set of JSON types allowed by a "type" keyword.
// The zero value allows every type.
type TypeSet uint8

const (
	TypeNull TypeSet = 1 << iota
	TypeBoolean
	TypeObject
	TypeArray
	TypeNumber
	TypeInteger
	TypeString
)

var typeNames = []struct {
	name string
	set  TypeSet
}{
	{"null", TypeNull},
	{"boolean", TypeBoolean},
	{"object", TypeObject},
	{"array", TypeArray},
	{"number", TypeNumber},
	{"integer", TypeInteger},
	{"string", TypeString},
}

// ParseType returns the set member for a JSON type name.
func ParseType(name string) (TypeSet, bool) {
	for _, tn := range typeNames {
		if tn.name == name {
			return tn.set, true
		}
	}
	return 0, false
}

// Allows reports whether v has one of the types in the set.
// Integers satisfy "number".
func (s TypeSet) Allows(v any) bool {
	if s == 0 {
		return true
	}
	got, _ := ParseType(document.TypeName(v))
	if got == TypeInteger {
		return s&(TypeInteger|TypeNumber) != 0
	}
	return s&got != 0
}

// Names returns the type names in the set in a stable order.
func (s TypeSet) Names() []string {
	var names []string
	for _, tn := range typeNames {
		if s&tn.set != 0 {
			names = append(names, tn.name)
		}
	}
	return names
}

// String joins the type names with " or ".
func (s TypeSet) String() string {
	if s == 0 {
		return "any"
	}
	return strings.Join(s.Names(), " or ")
}
