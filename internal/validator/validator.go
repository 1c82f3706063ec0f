// Package validator is a schema-driven JSON parser with graded recovery:
// given a JSON string and an expected schema, it returns a clean value, a
// repaired value plus warnings, or a hard failure.
package validator

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FieldType is the closed set of JSON-schema primitive types this
// validator understands.
type FieldType string

const (
	TString  FieldType = "string"
	TNumber  FieldType = "number"
	TBool    FieldType = "boolean"
	TArray   FieldType = "array"
	TObject  FieldType = "object"
)

// Field describes one schema property.
type Field struct {
	Name       string
	Type       FieldType
	Required   bool
	Nullable   bool
	Default    any
}

// Schema is an ordered, flat list of top-level fields. Nested schemas are
// out of scope: the recovery passes operate on one JSON object at a time.
type Schema struct {
	Fields []Field
}

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Outcome is a closed tagged result.
type Outcome int

const (
	Success Outcome = iota
	Recovered
	Failure
)

// Result is the output of ValidateAndParse.
type Result struct {
	Outcome  Outcome
	Value    map[string]any
	Warnings []string
	Err      error
}

// ParseError is a final, unrecoverable JSON parse failure.
type ParseError struct {
	Diagnostic string
}

func (e *ParseError) Error() string { return e.Diagnostic }

// ValidateAndParse parses raw against schema, applying recovery passes in
// order while any change is possible.
func ValidateAndParse(raw string, schema Schema) Result {
	if !gjson.Valid(raw) {
		return Result{Outcome: Failure, Err: &ParseError{Diagnostic: "invalid JSON: " + raw}}
	}

	var direct map[string]any
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		if missing := missingRequired(direct, schema); len(missing) == 0 && typesOK(direct, schema) {
			return Result{Outcome: Success, Value: direct}
		}
	}

	doc := raw
	var warnings []string
	for {
		changed := false

		if w, next, ok := repairMissingRequired(doc, schema); ok {
			doc = next
			warnings = append(warnings, w...)
			changed = true
		}
		if w, next, ok := repairTypeCoercion(doc, schema); ok {
			doc = next
			warnings = append(warnings, w...)
			changed = true
		}
		if w, next, ok := repairNulls(doc, schema); ok {
			doc = next
			warnings = append(warnings, w...)
			changed = true
		}

		if !changed {
			break
		}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(doc), &parsed); err == nil && len(missingRequired(parsed, schema)) == 0 {
		if len(warnings) == 0 {
			return Result{Outcome: Success, Value: parsed}
		}
		return Result{Outcome: Recovered, Value: parsed, Warnings: warnings}
	}

	// Last resort: required-only extraction.
	if w, extracted, ok := requiredOnlyExtraction(doc, schema); ok {
		warnings = append(warnings, w...)
		return Result{Outcome: Recovered, Value: extracted, Warnings: warnings}
	}

	return Result{Outcome: Failure, Err: &ParseError{Diagnostic: fmt.Sprintf("could not parse or recover: %s", doc)}}
}

func missingRequired(m map[string]any, schema Schema) []string {
	var missing []string
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		if _, ok := m[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func typesOK(m map[string]any, schema Schema) bool {
	for _, f := range schema.Fields {
		v, ok := m[f.Name]
		if !ok {
			continue
		}
		if !matchesType(v, f.Type) {
			return false
		}
	}
	return true
}

func matchesType(v any, t FieldType) bool {
	switch t {
	case TString:
		_, ok := v.(string)
		return ok
	case TNumber:
		_, ok := v.(float64)
		return ok
	case TBool:
		_, ok := v.(bool)
		return ok
	case TArray:
		_, ok := v.([]any)
		return ok
	case TObject:
		_, ok := v.(map[string]any)
		return ok
	default:
		return true
	}
}

func defaultFor(f Field) any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Type {
	case TString:
		return ""
	case TNumber:
		return 0
	case TBool:
		return false
	case TArray:
		return []any{}
	case TObject:
		return map[string]any{}
	default:
		return nil
	}
}

// repairMissingRequired inserts a type-appropriate default for any missing
// required field.
func repairMissingRequired(doc string, schema Schema) ([]string, string, bool) {
	var warnings []string
	changed := false
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		if !gjson.Get(doc, f.Name).Exists() {
			next, err := sjson.Set(doc, f.Name, defaultFor(f))
			if err != nil {
				continue
			}
			doc = next
			warnings = append(warnings, fmt.Sprintf("inserted default for missing required field %q", f.Name))
			changed = true
		}
	}
	return warnings, doc, changed
}

// repairTypeCoercion converts between types where unambiguous: number<->
// string, bool<->string ("true"/"yes"/"1", "false"/"no"/"0"/""), and wraps
// a single scalar into a one-element array when an array is required.
// Object->string is never attempted.
func repairTypeCoercion(doc string, schema Schema) ([]string, string, bool) {
	var warnings []string
	changed := false
	for _, f := range schema.Fields {
		res := gjson.Get(doc, f.Name)
		if !res.Exists() {
			continue
		}
		switch f.Type {
		case TNumber:
			if res.Type == gjson.String {
				num, perr := strconv.ParseFloat(res.Str, 64)
				if perr != nil {
					continue
				}
				next, err := sjson.Set(doc, f.Name, num)
				if err == nil {
					doc = next
					warnings = append(warnings, fmt.Sprintf("coerced %q from string to number", f.Name))
					changed = true
				}
			}
		case TString:
			if res.Type == gjson.Number {
				next, err := sjson.Set(doc, f.Name, res.String())
				if err == nil {
					doc = next
					warnings = append(warnings, fmt.Sprintf("coerced %q from number to string", f.Name))
					changed = true
				}
			} else if res.Type == gjson.True || res.Type == gjson.False {
				next, err := sjson.Set(doc, f.Name, res.String())
				if err == nil {
					doc = next
					warnings = append(warnings, fmt.Sprintf("coerced %q from bool to string", f.Name))
					changed = true
				}
			}
		case TBool:
			if res.Type == gjson.String {
				if b, ok := parseLooseBool(res.String()); ok {
					next, err := sjson.Set(doc, f.Name, b)
					if err == nil {
						doc = next
						warnings = append(warnings, fmt.Sprintf("coerced %q from string to bool", f.Name))
						changed = true
					}
				}
			} else if res.Type == gjson.Number {
				next, err := sjson.Set(doc, f.Name, res.Num != 0)
				if err == nil {
					doc = next
					warnings = append(warnings, fmt.Sprintf("coerced %q from number to bool", f.Name))
					changed = true
				}
			}
		case TArray:
			if !res.IsArray() {
				next, err := sjson.Set(doc, f.Name, []any{res.Value()})
				if err == nil {
					doc = next
					warnings = append(warnings, fmt.Sprintf("wrapped scalar %q into a one-element array", f.Name))
					changed = true
				}
			}
		}
	}
	return warnings, doc, changed
}

func parseLooseBool(s string) (bool, bool) {
	switch s {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0", "":
		return false, true
	default:
		return false, false
	}
}

// repairNulls replaces null in non-nullable fields with the type default.
// Nullability is detected via Field.Nullable (the schema's anyOf-null
// branch, flattened at schema-construction time).
func repairNulls(doc string, schema Schema) ([]string, string, bool) {
	var warnings []string
	changed := false
	for _, f := range schema.Fields {
		if f.Nullable {
			continue
		}
		res := gjson.Get(doc, f.Name)
		if res.Exists() && res.Type == gjson.Null {
			next, err := sjson.Set(doc, f.Name, defaultFor(f))
			if err == nil {
				doc = next
				warnings = append(warnings, fmt.Sprintf("replaced null in non-nullable field %q", f.Name))
				changed = true
			}
		}
	}
	return warnings, doc, changed
}

// requiredOnlyExtraction builds a fresh object with only the fields the
// schema requires, filling absent ones with defaults.
func requiredOnlyExtraction(doc string, schema Schema) ([]string, map[string]any, bool) {
	var warnings []string
	out := map[string]any{}
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		res := gjson.Get(doc, f.Name)
		if res.Exists() && matchesType(res.Value(), f.Type) {
			out[f.Name] = res.Value()
		} else {
			out[f.Name] = defaultFor(f)
			warnings = append(warnings, fmt.Sprintf("extracted %q with default value (required-only recovery)", f.Name))
		}
	}
	return warnings, out, true
}
