package addr

import (
	"strconv"
	"strings"
)

// V4 is a parsed IPv4 address.
type V4 [4]byte

// String returns the dotted-decimal form.
func (a V4) String() string {
	b := make([]byte, 0, len("255.255.255.255"))
	for i, octet := range a {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(octet), 10)
	}
	return string(b)
}

// ParseIPv4 parses a dotted-decimal IPv4 literal.
// Octets must be 1-3 digits without leading zeros and at most 255.
func ParseIPv4(s string) (V4, *ParseError) {
	var out V4
	if s == "" {
		return out, errorf(Malformed, "empty address")
	}
	n := 0
	for part := range strings.SplitSeq(s, ".") {
		if n == len(out) {
			return V4{}, errorf(Malformed, "more than 4 octets")
		}
		octet, err := parseOctet(part)
		if err != nil {
			return V4{}, err
		}
		out[n] = octet
		n++
	}
	if n != len(out) {
		return V4{}, errorf(Malformed, "expected 4 octets, got %d", n)
	}
	return out, nil
}

func parseOctet(part string) (byte, *ParseError) {
	if part == "" {
		return 0, errorf(Malformed, "empty octet")
	}
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return 0, errorf(InvalidCharacter, "%q in octet %q", part[i], part)
		}
	}
	if len(part) > 3 {
		return 0, errorf(Malformed, "octet %q has more than 3 digits", part)
	}
	if len(part) > 1 && part[0] == '0' {
		return 0, errorf(Malformed, "octet %q has a leading zero", part)
	}
	v := 0
	for i := 0; i < len(part); i++ {
		v = v*10 + int(part[i]-'0')
	}
	if v > 255 {
		return 0, errorf(OutOfRange, "octet %d exceeds 255", v)
	}
	return byte(v), nil
}
