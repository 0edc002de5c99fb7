package format

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/idna"

	"github.com/jacoelho/jsonschema/internal/addr"
)

// IPv4 checks the "ipv4" format: a dotted-quad without leading zeros.
func IPv4(s string) error {
	if _, err := addr.ParseIPv4(s); err != nil {
		return fromParseError(err)
	}
	return nil
}

// IPv6 checks the "ipv6" format.
func IPv6(s string) error {
	if _, err := addr.ParseIPv6(s); err != nil {
		return fromParseError(err)
	}
	return nil
}

// UUID checks the "uuid" format: the 36 character hyphenated RFC 4122 form.
// Braced and urn:uuid: spellings accepted by uuid.Parse are rejected.
func UUID(s string) error {
	if len(s) != 36 {
		return &Error{Kind: KindMalformed, Detail: "want 36 characters"}
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return &Error{Kind: KindMalformed, Detail: "hyphens must separate 8-4-4-4-12 groups"}
	}
	if _, err := uuid.Parse(s); err != nil {
		return &Error{Kind: KindInvalidCharacter, Detail: err.Error()}
	}
	return nil
}

var hostnameProfile = idna.New(
	idna.MapForLookup(),
	idna.ValidateLabels(true),
	idna.BidiRule(),
	idna.StrictDomainName(true),
	idna.VerifyDNSLength(true),
)

// Hostname checks the "hostname" format: an ASCII DNS name.
func Hostname(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return &Error{Kind: KindInvalidCharacter, Detail: "non-ASCII character, use idn-hostname"}
		}
	}
	return IDNHostname(s)
}

// IDNHostname checks the "idn-hostname" format: a DNS name that may carry
// internationalized labels.
func IDNHostname(s string) error {
	if s == "" {
		return &Error{Kind: KindMalformed, Detail: "empty hostname"}
	}
	if _, err := hostnameProfile.ToASCII(s); err != nil {
		return &Error{Kind: KindMalformed, Detail: err.Error()}
	}
	return nil
}
