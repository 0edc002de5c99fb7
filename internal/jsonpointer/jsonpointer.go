// Package jsonpointer builds RFC 6901 JSON pointers.
package jsonpointer

import (
	"strconv"
	"strings"
)

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// Append returns ptr extended by one reference token.
func Append(ptr, token string) string {
	return ptr + "/" + escaper.Replace(token)
}

// AppendIndex returns ptr extended by an array index token.
func AppendIndex(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}
