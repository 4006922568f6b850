package jsonmapper

// Nullable is a three-state result distinguishing "explicit null" from "has a
// value". Absence is a separate, outer state: the optional access variants
// report it by returning a nil pointer, so a field is always exactly one of
// absent, null or valued.
type Nullable[T any] struct {
	// Value holds the converted value when Valid is true.
	Value T
	// Valid is false when the field was explicit null.
	Valid bool
}

// Option configures the null-handling policy of an access variant.
type Option func(*settings)

type settings struct {
	pathNullAsMissing  bool
	fieldNullAsMissing bool
}

// WithPathNullAsMissing controls whether an explicit null on an intermediate
// path component counts as an absent path (default true). It never affects
// the terminal value of the path.
func WithPathNullAsMissing(enabled bool) Option {
	return func(s *settings) {
		s.pathNullAsMissing = enabled
	}
}

// WithFieldNullAsMissing controls whether an explicit null as the terminal
// value of an optional field counts as an absent field (default true). It has
// no effect on the nullable variants, where a terminal null is a first-class
// Nullable state.
func WithFieldNullAsMissing(enabled bool) Option {
	return func(s *settings) {
		s.fieldNullAsMissing = enabled
	}
}

func newSettings(opts []Option) settings {
	s := settings{pathNullAsMissing: true, fieldNullAsMissing: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Map resolves path as a required field and converts the raw value with
// transform. Errors raised by the transform surface re-rooted under path, so
// the reported location is always relative to this mapper's root.
//
// Example:
//
//	name, err := jsonmapper.Map(m, jsonmapper.NewPath("user", "name"), jsonmapper.String())
func Map[T any](m *Mapper, path Path, transform Transform[T]) (T, error) {
	var zero T
	raw, rerr := m.resolve(path)
	if rerr != nil {
		return zero, rerr
	}
	out, err := transform(raw, m)
	if err != nil {
		return zero, rerootError(err, path, raw)
	}
	return out, nil
}

// OptionalMap resolves path as an optional field: an absent path returns
// (nil, nil) instead of an error, and so does a terminal explicit null under
// the default WithFieldNullAsMissing policy.
//
// One refinement applies to enum-style conversions: a MissingCase error whose
// path is empty — the failure is exactly at the requested field, not inside a
// nested structure — is swallowed into absence. Enum mismatches on nested
// fields still propagate.
func OptionalMap[T any](m *Mapper, path Path, transform Transform[T], opts ...Option) (*T, error) {
	cfg := newSettings(opts)
	raw, present, rerr := m.resolveOptional(path, cfg.pathNullAsMissing)
	if rerr != nil {
		return nil, rerr
	}
	if !present {
		return nil, nil
	}
	if raw == nil && cfg.fieldNullAsMissing {
		return nil, nil
	}
	out, err := transform(raw, m)
	if err != nil {
		if missingCaseAtField(err) {
			return nil, nil
		}
		return nil, rerootError(err, path, raw)
	}
	return &out, nil
}

// NullableMap resolves path as a required field whose value may be explicit
// null. An absent path is a MissingField error, unlike OptionalMap. A terminal
// explicit null returns an invalid Nullable without invoking the transform.
func NullableMap[T any](m *Mapper, path Path, transform Transform[T]) (Nullable[T], error) {
	raw, rerr := m.resolve(path)
	if rerr != nil {
		return Nullable[T]{}, rerr
	}
	if raw == nil {
		return Nullable[T]{}, nil
	}
	out, err := transform(raw, m)
	if err != nil {
		return Nullable[T]{}, rerootError(err, path, raw)
	}
	return Nullable[T]{Value: out, Valid: true}, nil
}

// OptionalNullableMap combines OptionalMap's absence handling with
// NullableMap's terminal-null handling: an absent path returns (nil, nil), a
// terminal explicit null returns an invalid Nullable, and a present value is
// converted and returned as a valid Nullable. The same empty-path MissingCase
// swallowing as OptionalMap applies.
func OptionalNullableMap[T any](m *Mapper, path Path, transform Transform[T], opts ...Option) (*Nullable[T], error) {
	cfg := newSettings(opts)
	raw, present, rerr := m.resolveOptional(path, cfg.pathNullAsMissing)
	if rerr != nil {
		return nil, rerr
	}
	if !present {
		return nil, nil
	}
	if raw == nil {
		return &Nullable[T]{}, nil
	}
	out, err := transform(raw, m)
	if err != nil {
		if missingCaseAtField(err) {
			return nil, nil
		}
		return nil, rerootError(err, path, raw)
	}
	return &Nullable[T]{Value: out, Valid: true}, nil
}

// missingCaseAtField reports whether err is a MissingCase raised exactly at
// the requested field, before any nested segment was consumed. Only that
// boundary is eligible for absence coercion; do not widen it to nested paths,
// which would mask real enum mismatches inside nested structures.
func missingCaseAtField(err error) bool {
	me, ok := err.(*Error)
	return ok && me.Kind == MissingCase && len(me.Path) == 0
}
