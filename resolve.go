package jsonmapper

// Resolve walks path over the mapper's tree and returns the raw sub-value,
// untouched by any conversion. The terminal value may be explicit null (nil).
// Failures are mapping errors locating the first unresolvable step.
//
// Example:
//
//	raw, err := m.Resolve(jsonmapper.NewPath("store", "book", 0))
func (m *Mapper) Resolve(path Path) (interface{}, error) {
	raw, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// resolve walks path segment by segment starting at the mapper's root and
// returns the raw sub-value. The terminal value is returned unchanged; it may
// itself be explicit null.
//
// Failure locations follow two rules:
//   - a wrongly-shaped intermediate value is a TypeMismatch at the segments
//     consumed so far (the location of the value that has the wrong shape);
//   - an absent key or out-of-range index is a MissingField at the prefix
//     through the failing segment inclusive, regardless of how many trailing
//     segments remain unconsumed.
func (m *Mapper) resolve(path Path) (interface{}, *Error) {
	current := m.value
	for i, seg := range path {
		if seg.IsKey() {
			obj, ok := current.(map[string]interface{})
			if !ok {
				return nil, &Error{
					Kind:     TypeMismatch,
					Path:     path[:i:i],
					Value:    current,
					Expected: "mapping",
					Actual:   typeName(current),
				}
			}
			next, exists := obj[seg.Key()]
			if !exists {
				return nil, &Error{
					Kind:  MissingField,
					Path:  path[: i+1 : i+1],
					Value: m.value,
				}
			}
			current = next
			continue
		}

		seq, ok := current.([]interface{})
		if !ok {
			return nil, &Error{
				Kind:     TypeMismatch,
				Path:     path[:i:i],
				Value:    current,
				Expected: "sequence",
				Actual:   typeName(current),
			}
		}
		if seg.Index() < 0 || seg.Index() >= len(seq) {
			return nil, &Error{
				Kind:  MissingField,
				Path:  path[: i+1 : i+1],
				Value: m.value,
			}
		}
		current = seq[seg.Index()]
	}
	return current, nil
}

// resolveOptional resolves path, reporting absence instead of failing.
// MissingField always converts to absent. A TypeMismatch converts to absent
// only when pathNullAsMissing is true and the mismatched value is the explicit
// null marker, i.e. an intermediate path component was null rather than merely
// wrong-shaped. That policy governs intermediate components only: a terminal
// explicit null resolves successfully and is returned as nil with present=true.
func (m *Mapper) resolveOptional(path Path, pathNullAsMissing bool) (raw interface{}, present bool, err *Error) {
	value, rerr := m.resolve(path)
	if rerr == nil {
		return value, true, nil
	}
	if rerr.Kind == MissingField {
		return nil, false, nil
	}
	if rerr.Kind == TypeMismatch && pathNullAsMissing && rerr.Actual == "null" {
		return nil, false, nil
	}
	return nil, false, rerr
}
