// Package addr parses textual IPv4 and IPv6 address literals under strict
// grammar rules suitable for the JSON Schema "ipv4" and "ipv6" formats.
package addr
