package jsonmapper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Decode hands the mapper's whole sub-tree to a generic structural decoder
// and returns the decoded domain object. Field names match struct fields or
// their `json` tags, case-insensitively. Decoder failures are translated into
// this package's error taxonomy with the decoder's own field chain preserved
// as the error path; for shape mismatches the offending raw sub-value is
// looked up through the resolver at the translated path, falling back to the
// decoder's description when that secondary lookup fails.
//
// Example:
//
//	type User struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//	u, err := jsonmapper.Decode[User](m)
func Decode[T any](m *Mapper) (T, error) {
	return decode[T](m, false)
}

// DecodeStrict is Decode with strict field accounting: input keys without a
// struct field and struct fields without an input key are errors, reported as
// TransformFailed and MissingField respectively.
func DecodeStrict[T any](m *Mapper) (T, error) {
	return decode[T](m, true)
}

// Decoded adapts Decode into a transform, for bulk-decoding a nested field.
//
// Example:
//
//	addr, err := jsonmapper.Map(m, jsonmapper.NewPath("address"), jsonmapper.Decoded[Address]())
func Decoded[T any]() Transform[T] {
	return func(raw interface{}, m *Mapper) (T, error) {
		return Decode[T](m.sub(raw))
	}
}

func decode[T any](m *Mapper, strict bool) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		TagName:     "json",
		ErrorUnused: strict,
		ErrorUnset:  strict,
	})
	if err != nil {
		return out, &Error{
			Kind:   TransformFailed,
			Value:  m.value,
			Actual: typeName(m.value),
			Cause:  err,
		}
	}
	if err := dec.Decode(m.value); err != nil {
		return out, translateDecodeError(err, m)
	}
	return out, nil
}

// Decoder failure lines, in the shapes mapstructure renders them.
var (
	unconvertibleRE = regexp.MustCompile(`^'(.*)' expected type '([^']*)', got unconvertible type '([^']*)'`)
	expectedMapRE   = regexp.MustCompile(`^'(.*)' expected a map, got '([^']*)'`)
	unsetFieldsRE   = regexp.MustCompile(`^'(.*)' has unset fields: (.+)$`)
	fieldPathRE     = regexp.MustCompile(`([^.\[\]]+)|\[(\d+)\]`)
)

// translateDecodeError converts the decoder's native error into the four-kind
// taxonomy. The decoder reports one line per failing field; the first line
// wins, since callers receive a single structured error.
func translateDecodeError(err error, m *Mapper) *Error {
	for _, line := range decodeErrorLines(err) {
		if match := unconvertibleRE.FindStringSubmatch(line); match != nil {
			return typeMismatchAt(parseDecoderPath(match[1]), match[2], match[3], line, m)
		}
		if match := expectedMapRE.FindStringSubmatch(line); match != nil {
			return typeMismatchAt(parseDecoderPath(match[1]), "mapping", match[2], line, m)
		}
		if match := unsetFieldsRE.FindStringSubmatch(line); match != nil {
			fields := strings.Split(match[2], ", ")
			path := append(parseDecoderPath(match[1]), Key(fields[0]))
			return &Error{Kind: MissingField, Path: path, Value: m.value}
		}
	}
	// Structural corruption with no recognizable location: TransformFailed
	// at the decoder's reported path, which degrades to the root here.
	return &Error{
		Kind:   TransformFailed,
		Value:  m.value,
		Actual: typeName(m.value),
		Cause:  err,
	}
}

func typeMismatchAt(path Path, expected, actual, description string, m *Mapper) *Error {
	merr := &Error{
		Kind:     TypeMismatch,
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
	if raw, rerr := m.resolve(path); rerr == nil {
		merr.Value = raw
	} else {
		merr.Value = description
	}
	return merr
}

// decodeErrorLines flattens the decoder's error rendering into its per-field
// lines. Works on the joined "* '...' ..." multi-line form as well as a bare
// single-line error.
func decodeErrorLines(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line != "" && line != "error(s) decoding:" && !strings.HasSuffix(line, "error(s) decoding:") {
			out = append(out, line)
		}
	}
	return out
}

// parseDecoderPath converts the decoder's field chain ("Spec.Items[2].Name")
// into a Path. An empty chain is the decode root.
func parseDecoderPath(chain string) Path {
	var out Path
	for _, match := range fieldPathRE.FindAllStringSubmatch(chain, -1) {
		if match[1] != "" {
			out = append(out, Key(match[1]))
			continue
		}
		if n, err := strconv.Atoi(match[2]); err == nil {
			out = append(out, Index(n))
		}
	}
	return out
}
