package jsonmapper

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeFormats is the ordered list of layouts Time tries when no explicit
// formats are given. Process-wide configuration: replace it before parsing if
// your documents use other layouts.
var TimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TimeParser parses a timestamp string with a single layout. It is a
// pluggable hook: replace it to swap in a custom parser (fixed locations,
// epoch strings, ...) without touching the transform plumbing.
var TimeParser = func(layout, value string) (time.Time, error) {
	return time.Parse(layout, value)
}

// String returns a transform for string fields.
func String() Transform[string] {
	return Cast(func(s string) (string, error) { return s, nil })
}

// Bool returns a transform for boolean fields.
func Bool() Transform[bool] {
	return Cast(func(b bool) (bool, error) { return b, nil })
}

// Float returns a transform for numeric fields. JSON numbers decode as
// float64, so this is the identity over the tree's number shape.
func Float() Transform[float64] {
	return Cast(func(f float64) (float64, error) { return f, nil })
}

// Int returns a transform for whole numeric fields. A number with a
// fractional part is a TransformFailed: truncating silently would corrupt
// the value.
func Int() Transform[int64] {
	return Cast(func(f float64) (int64, error) {
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, &Error{
				Kind:     TransformFailed,
				Value:    f,
				Expected: "integer",
				Actual:   "number",
			}
		}
		return int64(f), nil
	})
}

// IntFromString returns a transform for integers carried as strings, a common
// shape for identifiers too large for float64. A string that does not spell
// an integer is a TypeMismatch: the value's shape, not the conversion, is at
// fault.
func IntFromString() Transform[int64] {
	return Cast(func(s string) (int64, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, &Error{
				Kind:     TypeMismatch,
				Value:    s,
				Expected: "integer",
				Actual:   "string",
				Cause:    err,
			}
		}
		return n, nil
	})
}

// Decimal returns a transform for exact decimal fields. It accepts both shapes
// decimals travel in: a number, or a string for values that must not pass
// through float64.
func Decimal() Transform[decimal.Decimal] {
	return func(raw interface{}, m *Mapper) (decimal.Decimal, error) {
		switch v := raw.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return decimal.Decimal{}, &Error{
					Kind:     TransformFailed,
					Value:    v,
					Expected: "decimal",
					Actual:   "string",
					Cause:    err,
				}
			}
			return d, nil
		default:
			return decimal.Decimal{}, &Error{
				Kind:     TypeMismatch,
				Value:    raw,
				Expected: "number",
				Actual:   typeName(raw),
			}
		}
	}
}

// Time returns a transform for timestamp strings. The given layouts are tried
// in order and the first successful parse wins; with no layouts given the
// package-level TimeFormats list applies. Exhausting the list is a
// TransformFailed.
func Time(formats ...string) Transform[time.Time] {
	return Cast(func(s string) (time.Time, error) {
		layouts := formats
		if len(layouts) == 0 {
			layouts = TimeFormats
		}
		for _, layout := range layouts {
			if t, err := TimeParser(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, &Error{
			Kind:     TransformFailed,
			Value:    s,
			Expected: "time.Time",
			Actual:   "string",
		}
	})
}

// URL returns a transform for URL strings. Unencoded spaces are re-encoded
// before parsing, and the returned URL renders with canonical percent
// escaping via its String method.
func URL() Transform[*url.URL] {
	return Cast(func(s string) (*url.URL, error) {
		u, err := url.Parse(strings.ReplaceAll(s, " ", "%20"))
		if err != nil {
			return nil, &Error{
				Kind:     TransformFailed,
				Value:    s,
				Expected: "URL",
				Actual:   "string",
				Cause:    err,
			}
		}
		return u, nil
	})
}

// UUID returns a transform for UUID strings.
func UUID() Transform[uuid.UUID] {
	return Cast(func(s string) (uuid.UUID, error) {
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, &Error{
				Kind:     TransformFailed,
				Value:    s,
				Expected: "UUID",
				Actual:   "string",
				Cause:    err,
			}
		}
		return id, nil
	})
}
