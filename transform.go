package jsonmapper

// Transform converts a raw tree value into a target type. The mapper argument
// is the mapper the raw value was resolved from; transforms use it to derive
// sub-mappers and to reach the shared payload. Transforms report failures
// with paths relative to the raw value they received — the calling access
// variant re-roots them under the resolved path.
type Transform[T any] func(raw interface{}, m *Mapper) (T, error)

// Cast builds a transform that downcasts the raw value to the concrete shape
// R before invoking fn. A raw value of any other shape is a TypeMismatch.
// This is the strategy for leaf conversions: R is one of the scalar tree
// shapes (string, float64, bool) or a shape produced by an outer transform.
//
// Example:
//
//	upper := jsonmapper.Cast(func(s string) (string, error) {
//	    return strings.ToUpper(s), nil
//	})
func Cast[R any, T any](fn func(R) (T, error)) Transform[T] {
	return func(raw interface{}, m *Mapper) (T, error) {
		var zero T
		r, ok := raw.(R)
		if !ok {
			var want R
			return zero, &Error{
				Kind:     TypeMismatch,
				Value:    raw,
				Expected: typeName(want),
				Actual:   typeName(raw),
			}
		}
		out, err := fn(r)
		if err != nil {
			return zero, err
		}
		return out, nil
	}
}

// Subtree builds a transform that hands the raw value to fn wrapped as a new
// mapper sharing the parent's payload. No shape check is performed: any
// sub-tree, scalar included, is a valid handle. This is the strategy for
// nested domain objects that resolve their own fields.
func Subtree[T any](fn func(*Mapper) (T, error)) Transform[T] {
	return func(raw interface{}, m *Mapper) (T, error) {
		return fn(m.sub(raw))
	}
}

// SubtreeSlice builds a transform over a sequence of sub-trees: the raw value
// must be a sequence, and each element is handed to fn as an independent
// mapper sharing the payload. The first failing element aborts the conversion
// with the element index prepended to the error path.
func SubtreeSlice[T any](fn func(*Mapper) (T, error)) Transform[[]T] {
	return Slice(Subtree(fn))
}

// Slice lifts a per-element transform to a sequence transform. The raw value
// must be a sequence. Elements convert in order; the first failure aborts the
// whole conversion, discarding partial results, with that element's index
// prepended to the error path.
func Slice[T any](elem Transform[T]) Transform[[]T] {
	return sliceTransform(elem, false)
}

// LenientSlice is Slice with the skip-failed-items policy: every element is
// attempted independently and failing elements are dropped from the output.
// No error surfaces for dropped elements and no index gap information is
// retained; surviving elements keep their relative order.
func LenientSlice[T any](elem Transform[T]) Transform[[]T] {
	return sliceTransform(elem, true)
}

func sliceTransform[T any](elem Transform[T], skipFailed bool) Transform[[]T] {
	return func(raw interface{}, m *Mapper) ([]T, error) {
		seq, ok := raw.([]interface{})
		if !ok {
			return nil, &Error{
				Kind:     TypeMismatch,
				Value:    raw,
				Expected: "sequence",
				Actual:   typeName(raw),
			}
		}
		out := make([]T, 0, len(seq))
		for i, item := range seq {
			v, err := elem(item, m)
			if err != nil {
				if skipFailed {
					continue
				}
				return nil, rerootError(err, Path{Index(i)}, item)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Enum builds a transform for enum-style conversions: the raw value is
// downcast to R, then convert looks up the matching domain case. A lookup
// miss is a MissingCase error, which the optional access variants coerce to
// absence when it occurs directly at the requested field.
//
// Example:
//
//	role := jsonmapper.Enum(func(s string) (Role, bool) {
//	    r, ok := roleByName[s]
//	    return r, ok
//	})
func Enum[R comparable, E any](convert func(R) (E, bool)) Transform[E] {
	cast := Cast(func(r R) (R, error) { return r, nil })
	return func(raw interface{}, m *Mapper) (E, error) {
		var zero E
		r, err := cast(raw, m)
		if err != nil {
			return zero, err
		}
		out, ok := convert(r)
		if !ok {
			return zero, &Error{
				Kind:     MissingCase,
				Value:    raw,
				Expected: typeName(zero),
			}
		}
		return out, nil
	}
}
