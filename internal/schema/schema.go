// Package schema implements the argument validation engine behind every tool.
//
// A tool's arguments are described by an Object: a set of named Fields plus
// optional cross-field Rules. Validation walks the incoming JSON value,
// coerces numeric strings to numbers where a field allows it, collects every
// violation instead of stopping at the first, and returns either a normalized
// copy of the input or a *ValidationError aggregating all issues.
//
// The same Object also renders the JSON Schema advertised on tools/list, so
// the advertised shape can never drift from what is enforced.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies the JSON type a Field accepts.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Field describes one value in an argument object.
type Field struct {
	Type        Type
	Description string

	// Required marks the field as mandatory at its level.
	Required bool

	// NonEmpty rejects the empty string.
	NonEmpty bool

	// AbsPath requires a string to start with the path separator.
	AbsPath bool

	// Coerce lets a number/integer field also accept a numeric string. The
	// string is parsed before range checks; a parse failure is a violation.
	Coerce bool

	// Min and Max bound numeric values, inclusive.
	Min *float64
	Max *float64

	// Enum restricts a string field to a closed vocabulary.
	Enum []string

	// Default is advertised in the generated schema only; it is never
	// applied during validation.
	Default any

	// Properties and PropOrder describe an object field's members.
	Properties map[string]*Field
	PropOrder  []string

	// Items describes an array field's element type. MinItems/MaxItems
	// bound its length when non-zero.
	Items    *Field
	MinItems int
	MaxItems int
}

// Float is a convenience for Min/Max literals.
func Float(v float64) *float64 { return &v }

// Rule is a cross-field constraint. It runs over the normalized argument
// map, except that a field which was supplied but failed its own checks is
// still present under its raw value, so a rule can tell "absent" apart from
// "invalid" and not pile a requirement message onto a field the caller did
// provide.
type Rule func(args map[string]any) []Issue

// Object is the root schema for one tool's arguments.
type Object struct {
	Fields map[string]*Field
	Order  []string
	Rules  []Rule
}

// Validate runs args through the schema and returns a normalized copy.
// All violations are collected; on any violation the returned error is a
// *ValidationError and the map is nil. The input map is not mutated, and
// validating an already-normalized map yields an identical result.
func (o *Object) Validate(args map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(args))
	ruleArgs := make(map[string]any, len(args))
	var issues []Issue

	for _, name := range o.Order {
		f := o.Fields[name]
		v, ok := args[name]
		if !ok || v == nil {
			if f.Required {
				issues = append(issues, Issue{Path: name, Message: "required"})
			}
			continue
		}
		nv, fieldIssues := checkField(name, f, v)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			ruleArgs[name] = v
			continue
		}
		normalized[name] = nv
		ruleArgs[name] = nv
	}

	for _, rule := range o.Rules {
		issues = append(issues, rule(ruleArgs)...)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return normalized, nil
}

// ValidateJSON decodes raw JSON into an object and validates it.
func (o *Object) ValidateJSON(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(raw) > 0 {
		dec := json.NewDecoder(strings.NewReader(string(raw)))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, &ValidationError{Issues: []Issue{{Message: "arguments must be a JSON object"}}}
		}
	}
	return o.Validate(args)
}

// ValidateAs validates raw JSON and decodes the normalized result into T.
// This is the typed entry point used by tool handlers: coerced fields (for
// example "n" sent as "3") arrive in T already carrying their numeric type.
func ValidateAs[T any](o *Object, raw json.RawMessage) (T, error) {
	var out T
	normalized, err := o.ValidateJSON(raw)
	if err != nil {
		return out, err
	}
	buf, err := json.Marshal(normalized)
	if err != nil {
		return out, fmt.Errorf("encode normalized arguments: %w", err)
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, fmt.Errorf("decode normalized arguments: %w", err)
	}
	return out, nil
}

func checkField(path string, f *Field, v any) (any, []Issue) {
	switch f.Type {
	case TypeString:
		return checkString(path, f, v)
	case TypeNumber, TypeInteger:
		return checkNumber(path, f, v)
	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, []Issue{{Path: path, Message: "must be a boolean"}}
		}
		return b, nil
	case TypeObject:
		return checkObject(path, f, v)
	case TypeArray:
		return checkArray(path, f, v)
	}
	return nil, []Issue{{Path: path, Message: fmt.Sprintf("unsupported field type %q", f.Type)}}
}

func checkString(path string, f *Field, v any) (any, []Issue) {
	s, ok := v.(string)
	if !ok {
		return nil, []Issue{{Path: path, Message: "must be a string"}}
	}
	var issues []Issue
	if f.NonEmpty && s == "" {
		issues = append(issues, Issue{Path: path, Message: "must not be empty"})
	}
	if f.AbsPath && !strings.HasPrefix(s, "/") {
		issues = append(issues, Issue{Path: path, Message: "must be an absolute path"})
	}
	if len(f.Enum) > 0 && !contains(f.Enum, s) {
		issues = append(issues, enumIssue(path, s, f.Enum))
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return s, nil
}

// enumIssue renders vocabulary violations. Any field whose path mentions
// "style" gets the self-describing message listing the full vocabulary.
func enumIssue(path, got string, allowed []string) Issue {
	if strings.Contains(path, "style") {
		return Issue{
			Path:       path,
			Message:    fmt.Sprintf("Invalid style: %q. Valid options are: %s", got, strings.Join(allowed, ", ")),
			Standalone: true,
		}
	}
	return Issue{Path: path, Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))}
}

func checkNumber(path string, f *Field, v any) (any, []Issue) {
	var (
		n   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		n, err = t.Float64()
	case float64:
		n = t
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		if !f.Coerce {
			return nil, []Issue{{Path: path, Message: "must be a number"}}
		}
		n, err = strconv.ParseFloat(t, 64)
	default:
		return nil, []Issue{{Path: path, Message: "must be a number"}}
	}
	// ParseFloat accepts "NaN" and "Inf", which would slip past the range
	// checks below.
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, []Issue{{Path: path, Message: fmt.Sprintf("%q is not a valid number", v)}}
	}

	if f.Type == TypeInteger && n != float64(int64(n)) {
		return nil, []Issue{{Path: path, Message: "must be an integer"}}
	}

	var issues []Issue
	if f.Min != nil && n < *f.Min {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("must be at least %s", formatNumber(*f.Min))})
	}
	if f.Max != nil && n > *f.Max {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("must be at most %s", formatNumber(*f.Max))})
	}
	if len(issues) > 0 {
		return nil, issues
	}

	if f.Type == TypeInteger {
		return int64(n), nil
	}
	return n, nil
}

func checkObject(path string, f *Field, v any) (any, []Issue) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, []Issue{{Path: path, Message: "must be an object"}}
	}
	normalized := make(map[string]any, len(obj))
	var issues []Issue
	for _, name := range f.PropOrder {
		prop := f.Properties[name]
		pv, ok := obj[name]
		childPath := path + "." + name
		if !ok || pv == nil {
			if prop.Required {
				issues = append(issues, Issue{Path: childPath, Message: "required"})
			}
			continue
		}
		nv, propIssues := checkField(childPath, prop, pv)
		if len(propIssues) > 0 {
			issues = append(issues, propIssues...)
			continue
		}
		normalized[name] = nv
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return normalized, nil
}

func checkArray(path string, f *Field, v any) (any, []Issue) {
	arr, ok := v.([]any)
	if !ok {
		return nil, []Issue{{Path: path, Message: "must be an array"}}
	}
	var issues []Issue
	if f.MinItems > 0 && len(arr) < f.MinItems {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("must contain at least %d item(s)", f.MinItems)})
	}
	if f.MaxItems > 0 && len(arr) > f.MaxItems {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf("must contain at most %d item(s)", f.MaxItems)})
	}
	normalized := make([]any, 0, len(arr))
	for i, item := range arr {
		nv, itemIssues := checkField(fmt.Sprintf("%s.%d", path, i), f.Items, item)
		if len(itemIssues) > 0 {
			issues = append(issues, itemIssues...)
			continue
		}
		normalized = append(normalized, nv)
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return normalized, nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
