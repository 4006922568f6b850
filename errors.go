package jsonmapper

import "fmt"

// Kind identifies the category of a mapping error. The set is closed: every
// failure in path resolution or conversion is classified as one of the four.
type Kind int

const (
	// TypeMismatch indicates a value did not have the expected runtime shape.
	TypeMismatch Kind = iota + 1
	// TransformFailed indicates a conversion from the raw value to the
	// target type failed.
	TransformFailed
	// MissingField indicates a required key was absent or a sequence index
	// was out of range.
	MissingField
	// MissingCase indicates an enum-style conversion found no matching case
	// for the raw value.
	MissingCase
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case TransformFailed:
		return "transform failed"
	case MissingField:
		return "missing field"
	case MissingCase:
		return "unmatched case"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the structured error type returned by all mapping operations.
// Path always points at the exact sub-location where the failure was first
// detected, re-rooted as it propagates so the outermost caller reads the full
// path from the original root. Use Kind (or the Is* helpers) to distinguish
// error categories programmatically.
type Error struct {
	// Kind identifies the error category.
	Kind Kind
	// Path locates the failure inside the tree that was being resolved.
	Path Path
	// Value is the offending raw value. For MissingField it holds the root
	// value the resolution started from, for diagnostics only.
	Value interface{}
	// Expected describes the type or shape that was required.
	Expected string
	// Actual describes the runtime shape that was found.
	Actual string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("jsonmapper: %s at %s", e.Kind, e.Path)
	if e.Expected != "" {
		if e.Actual != "" {
			msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Actual)
		} else {
			msg += fmt.Sprintf(": expected %s", e.Expected)
		}
	}
	if e.Kind == MissingCase {
		msg += fmt.Sprintf(": no case matches %v", e.Value)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// reroot returns a copy of the error with prefix prepended to its path.
// Each boundary crossing (access variant, collection element) applies this
// exactly once, so the final path is the literal concatenation of every
// segment consumed from the absolute root to the point of failure.
func (e *Error) reroot(prefix Path) *Error {
	if len(prefix) == 0 {
		return e
	}
	clone := *e
	clone.Path = prefix.join(e.Path)
	return &clone
}

// rerootError re-roots a mapping error under prefix. An error of any other
// type is classified as TransformFailed at prefix with the original error
// preserved as the cause, keeping the taxonomy closed.
func rerootError(err error, prefix Path, raw interface{}) *Error {
	if me, ok := err.(*Error); ok {
		return me.reroot(prefix)
	}
	return &Error{
		Kind:   TransformFailed,
		Path:   prefix,
		Value:  raw,
		Actual: typeName(raw),
		Cause:  err,
	}
}

// IsTypeMismatch returns true if err is a mapping error with kind TypeMismatch.
func IsTypeMismatch(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == TypeMismatch
}

// IsTransformFailed returns true if err is a mapping error with kind TransformFailed.
func IsTransformFailed(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == TransformFailed
}

// IsMissingField returns true if err indicates a missing key or out-of-range index.
func IsMissingField(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == MissingField
}

// IsMissingCase returns true if err indicates an enum value with no matching case.
func IsMissingCase(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == MissingCase
}

// typeName describes the runtime shape of a tree value using the tags the
// error messages speak in.
func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "mapping"
	case []interface{}:
		return "sequence"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
