package jsonmapper

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is a single step of a Path: either a mapping key or a sequence index.
// Segments are immutable; build them with Key and Index.
type Segment struct {
	key   string
	index int
	isKey bool
}

// Key returns a segment selecting a mapping entry by key.
func Key(key string) Segment {
	return Segment{key: key, isKey: true}
}

// Index returns a segment selecting a sequence element by position.
// Negative indices are not supported; resolution reports them as missing.
func Index(index int) Segment {
	return Segment{index: index}
}

// IsKey reports whether the segment selects a mapping key.
func (s Segment) IsKey() bool { return s.isKey }

// Key returns the mapping key. Only meaningful when IsKey is true.
func (s Segment) Key() string { return s.key }

// Index returns the sequence index. Only meaningful when IsKey is false.
func (s Segment) Index() int { return s.index }

// String renders the segment the way it appears in a rendered path:
// ".key" for keys, "[n]" for indices.
func (s Segment) String() string {
	if s.isKey {
		return "." + s.key
	}
	return fmt.Sprintf("[%d]", s.index)
}

// Path locates a value inside an untyped tree as an ordered sequence of
// segments. The empty path denotes the whole value. Paths are pure data and
// never own the tree they describe.
type Path []Segment

// NewPath builds a Path from a mix of literals, flattening as it goes.
// Accepted parts: string (key), int (index), Segment, Path and []interface{}
// of the same. Any other part type panics; use NewPath only with literal
// arguments, like MustParsePath.
//
// Example:
//
//	p := jsonmapper.NewPath("store", "book", 0, "title")
func NewPath(parts ...interface{}) Path {
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			path = append(path, Key(v))
		case int:
			path = append(path, Index(v))
		case Segment:
			path = append(path, v)
		case Path:
			path = append(path, v...)
		case []interface{}:
			path = append(path, NewPath(v...)...)
		default:
			panic(fmt.Sprintf("jsonmapper.NewPath: unsupported part type %T", part))
		}
	}
	return path
}

// String renders the path in normalized dotted form rooted at '$',
// e.g. "$.store.book[0].title". The empty path renders as "$".
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p {
		b.WriteString(seg.String())
	}
	return b.String()
}

// join returns a new path holding prefix followed by p. The result never
// shares backing storage with either operand.
func (p Path) join(suffix Path) Path {
	out := make(Path, 0, len(p)+len(suffix))
	out = append(out, p...)
	out = append(out, suffix...)
	return out
}

// ParsePath parses a dotted path expression into a Path. The leading '$' is
// optional. Supported forms: ".key" child access, "['key']" and `["key"]`
// quoted child access, and "[n]" index access with n >= 0.
//
// Example:
//
//	p, err := jsonmapper.ParsePath("$.store.book[0].title")
func ParsePath(path string) (Path, error) {
	s := strings.TrimSpace(path)
	if strings.HasPrefix(s, "$") {
		s = s[1:]
	}

	var out Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			key, advance := readIdentifier(s[i:])
			if key == "" {
				return nil, &Error{
					Kind:     TransformFailed,
					Expected: "path expression",
					Actual:   "string",
					Value:    path,
					Cause:    fmt.Errorf("expected key after '.' at position %d", i),
				}
			}
			out = append(out, Key(key))
			i += advance
		case '[':
			seg, advance, err := parseBracketSegment(s[i:], path)
			if err != nil {
				return nil, err
			}
			out = append(out, seg)
			i += advance
		default:
			// Bare leading identifier, e.g. "a.b" without the '$.' prefix.
			if len(out) == 0 {
				key, advance := readIdentifier(s[i:])
				if key != "" {
					out = append(out, Key(key))
					i += advance
					continue
				}
			}
			return nil, &Error{
				Kind:     TransformFailed,
				Expected: "path expression",
				Actual:   "string",
				Value:    path,
				Cause:    fmt.Errorf("unexpected character %q at position %d", s[i], i),
			}
		}
	}
	return out, nil
}

// MustParsePath parses a path expression and panics if it is invalid.
// Use only for compile-time constant paths.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(fmt.Sprintf("jsonmapper.MustParsePath: %v", err))
	}
	return p
}

func readIdentifier(s string) (string, int) {
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '[' {
		i++
	}
	return s[:i], i
}

// parseBracketSegment parses "[n]", "['key']" or `["key"]` at the start of s.
func parseBracketSegment(s, full string) (Segment, int, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Segment{}, 0, &Error{
			Kind:     TransformFailed,
			Expected: "path expression",
			Actual:   "string",
			Value:    full,
			Cause:    fmt.Errorf("unterminated bracket segment"),
		}
	}
	inner := s[1:end]

	if len(inner) >= 2 {
		if q := inner[0]; (q == '\'' || q == '"') && inner[len(inner)-1] == q {
			return Key(inner[1 : len(inner)-1]), end + 1, nil
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil || n < 0 {
		return Segment{}, 0, &Error{
			Kind:     TransformFailed,
			Expected: "path expression",
			Actual:   "string",
			Value:    full,
			Cause:    fmt.Errorf("invalid bracket segment %q", inner),
		}
	}
	return Index(n), end + 1, nil
}
