// Package format implements the checkers behind the JSON Schema "format"
// keyword and the registry that maps format names to them.
package format
