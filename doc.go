// Package jsonschema compiles JSON Schema (draft 2020-12) documents and
// validates instances against them.
//
// The supported keywords are type, properties, required, anyOf and format.
// Format assertions are off by default, as the draft specifies; enable them
// with Options.WithValidateFormats. The built-in formats are ipv4, ipv6,
// uuid, hostname and idn-hostname.
//
//	s, err := jsonschema.LoadFile("schema.json", jsonschema.NewOptions().WithValidateFormats(true))
//	if err != nil {
//		return err
//	}
//	report := s.Validate(map[string]any{"address": "2001:db8::1"})
//	for v := range report.Errors() {
//		fmt.Println(v.Path, v.Message)
//	}
package jsonschema
