// Package validator evaluates instances against compiled schema nodes and
// records the result as an outcome tree.
package validator
