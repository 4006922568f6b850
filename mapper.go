// Package jsonmapper extracts strongly typed domain values out of untyped
// trees produced by parsing JSON or YAML (nested maps, ordered sequences,
// strings, numbers, booleans and explicit nulls), producing precise,
// path-qualified errors when extraction or conversion fails.
//
// # Basic Usage
//
//	m, err := jsonmapper.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	title, err := jsonmapper.Map(m, jsonmapper.NewPath("store", "book", 0, "title"), jsonmapper.String())
//
// Access variants distinguish three field states: absent path, explicit null
// and present value. Map requires the path, OptionalMap treats absence as a
// nil result, NullableMap keeps explicit null as a first-class state, and
// OptionalNullableMap combines both.
//
// All operations are deterministic and purely functional over the input tree:
// nothing is mutated, so concurrent resolutions over the same tree are safe.
package jsonmapper

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// Mapper is a handle over one tree value plus an opaque payload shared by
// every sub-mapper derived from it. The zero Mapper is a handle over null.
type Mapper struct {
	value   interface{}
	payload interface{}
}

// Parse decodes JSON text into an untyped tree and returns a Mapper over it.
// Numbers decode as float64, objects as map[string]interface{} and arrays as
// []interface{}, matching encoding/json.
//
// Example:
//
//	m, err := jsonmapper.Parse([]byte(`{"user":{"name":"Alice"}}`))
func Parse(data []byte) (*Mapper, error) {
	if !utf8.Valid(data) {
		return nil, &Error{
			Kind:     TransformFailed,
			Expected: "text",
			Actual:   "binary data",
			Value:    data,
		}
	}
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &Error{
			Kind:     TransformFailed,
			Expected: "JSON",
			Actual:   "string",
			Value:    string(data),
			Cause:    err,
		}
	}
	return &Mapper{value: root}, nil
}

// ParseYAML decodes YAML text into an untyped tree and returns a Mapper over
// it. The tree is normalized to the same shape Parse produces: string-keyed
// mappings and float64 numbers, so transforms behave identically on both
// front-ends.
func ParseYAML(data []byte) (*Mapper, error) {
	if !utf8.Valid(data) {
		return nil, &Error{
			Kind:     TransformFailed,
			Expected: "text",
			Actual:   "binary data",
			Value:    data,
		}
	}
	var root interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &Error{
			Kind:     TransformFailed,
			Expected: "YAML",
			Actual:   "string",
			Value:    string(data),
			Cause:    err,
		}
	}
	return &Mapper{value: normalizeTree(root)}, nil
}

// FromValue wraps an already-parsed tree value. The value is borrowed, never
// mutated; callers keep ownership.
func FromValue(value interface{}) *Mapper {
	return &Mapper{value: value}
}

// WithPayload returns a copy of the mapper carrying payload. The payload is an
// opaque pass-through reference: it is handed unchanged to every sub-mapper
// created during resolution and is never interpreted by this package.
// Consumers typically use it to carry shared configuration into transforms.
func (m *Mapper) WithPayload(payload interface{}) *Mapper {
	return &Mapper{value: m.value, payload: payload}
}

// Value returns the raw tree value this mapper wraps.
func (m *Mapper) Value() interface{} { return m.value }

// Payload returns the opaque payload attached with WithPayload, or nil.
func (m *Mapper) Payload() interface{} { return m.payload }

// IsNull reports whether the wrapped value is the explicit null marker.
func (m *Mapper) IsNull() bool { return m.value == nil }

// At resolves path and returns a sub-mapper over the result. When the path is
// absent or its terminal value is explicit null, the sub-mapper wraps fallback
// instead. A nil fallback in that situation is a MissingField error: there is
// no value to hand out.
func (m *Mapper) At(path Path, fallback interface{}) (*Mapper, error) {
	raw, present, err := m.resolveOptional(path, true)
	if err != nil {
		return nil, err
	}
	if !present || raw == nil {
		if fallback == nil {
			return nil, &Error{Kind: MissingField, Path: path, Value: m.value}
		}
		return m.sub(fallback), nil
	}
	return m.sub(raw), nil
}

// sub wraps a resolved sub-value in a new mapper sharing the payload.
func (m *Mapper) sub(value interface{}) *Mapper {
	return &Mapper{value: value, payload: m.payload}
}

// normalizeTree rewrites a decoded YAML tree into the JSON tree shape:
// interface{}-keyed maps become string-keyed and native integer scalars
// become float64. Unknown leaf types pass through untouched.
func normalizeTree(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeTree(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeTree(item)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeTree(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}
