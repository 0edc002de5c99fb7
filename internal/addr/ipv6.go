package addr

import (
	"strconv"
	"strings"
)

const v6Groups = 8

// V6 is a parsed IPv6 address stored as eight 16-bit groups.
type V6 [v6Groups]uint16

// String returns the full eight-group form with four lowercase hex digits per group.
func (a V6) String() string {
	const digits = "0123456789abcdef"
	b := make([]byte, 0, v6Groups*5-1)
	for i, g := range a {
		if i > 0 {
			b = append(b, ':')
		}
		b = append(b, digits[g>>12], digits[g>>8&0xf], digits[g>>4&0xf], digits[g&0xf])
	}
	return string(b)
}

// Compressed returns the RFC 5952 text form: leading zeros dropped and the
// longest run of two or more zero groups replaced by "::". It is meant for
// diagnostics; String is the form used for comparison and round trips.
func (a V6) Compressed() string {
	start, length := -1, 0
	for i := 0; i < v6Groups; {
		if a[i] != 0 {
			i++
			continue
		}
		j := i
		for j < v6Groups && a[j] == 0 {
			j++
		}
		if j-i > length {
			start, length = i, j-i
		}
		i = j
	}
	if length < 2 {
		start = -1
	}

	var b []byte
	for i := 0; i < v6Groups; i++ {
		if i == start {
			b = append(b, ':', ':')
			i += length - 1
			continue
		}
		if len(b) > 0 && b[len(b)-1] != ':' {
			b = append(b, ':')
		}
		b = strconv.AppendUint(b, uint64(a[i]), 16)
	}
	return string(b)
}

// ParseIPv6 parses an IPv6 literal made of colon-separated hextets with at
// most one "::" marker. Zone identifiers and dotted-quad suffixes are rejected.
func ParseIPv6(s string) (V6, *ParseError) {
	if s == "" {
		return V6{}, errorf(Malformed, "empty address")
	}
	if i := strings.IndexAny(s, ".%"); i >= 0 {
		if s[i] == '%' {
			return V6{}, errorf(InvalidCharacter, "zone identifiers are not supported")
		}
		return V6{}, errorf(InvalidCharacter, "embedded IPv4 suffixes are not supported")
	}

	head, tail, compressed := strings.Cut(s, "::")
	if compressed && strings.Contains(tail, "::") {
		return V6{}, errorf(Malformed, "multiple '::' markers")
	}

	lead, err := parseGroups(head)
	if err != nil {
		return V6{}, err
	}
	if !compressed {
		switch {
		case len(lead) > v6Groups:
			return V6{}, errorf(TooManySegments, "got %d groups, want %d", len(lead), v6Groups)
		case len(lead) < v6Groups:
			return V6{}, errorf(TooFewSegments, "got %d groups, want %d", len(lead), v6Groups)
		}
		var out V6
		copy(out[:], lead)
		return out, nil
	}

	trail, err := parseGroups(tail)
	if err != nil {
		return V6{}, err
	}
	if explicit := len(lead) + len(trail); explicit >= v6Groups {
		return V6{}, errorf(Malformed, "'::' with %d explicit groups", explicit)
	}
	var out V6
	copy(out[:], lead)
	copy(out[v6Groups-len(trail):], trail)
	return out, nil
}

// parseGroups parses a colon-separated run of hextets. An empty run yields no groups.
func parseGroups(s string) ([]uint16, *ParseError) {
	if s == "" {
		return nil, nil
	}
	groups := make([]uint16, 0, v6Groups)
	for part := range strings.SplitSeq(s, ":") {
		g, err := parseHextet(part)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func parseHextet(part string) (uint16, *ParseError) {
	if part == "" {
		return 0, errorf(Malformed, "empty group")
	}
	var v uint32
	for i := 0; i < len(part); i++ {
		d, ok := hexValue(part[i])
		if !ok {
			return 0, errorf(InvalidCharacter, "%q in group %q", part[i], part)
		}
		v = v<<4 | uint32(d)
	}
	if len(part) > 4 {
		return 0, errorf(Malformed, "group %q has more than 4 hex digits", part)
	}
	return uint16(v), nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
