package jsonmapper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonmapper "github.com/njchilds90/go-jsonmapper"
)

func TestCastMismatch(t *testing.T) {
	m := mustParse(t, sampleJSON)

	upper := jsonmapper.Cast(func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})

	got, err := jsonmapper.Map(m, jsonmapper.NewPath("store", "bicycle", "color"), upper)
	require.NoError(t, err)
	assert.Equal(t, "RED", got)

	_, err = jsonmapper.Map(m, jsonmapper.NewPath("expensive"), upper)
	require.True(t, jsonmapper.IsTypeMismatch(err))

	var merr *jsonmapper.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "string", merr.Expected)
	assert.Equal(t, "number", merr.Actual)
}

func TestSubtreeWrapsAnyValue(t *testing.T) {
	m := mustParse(t, sampleJSON)

	// No shape check: even a scalar is a valid sub-tree handle.
	kind, err := jsonmapper.Map(m, jsonmapper.NewPath("expensive"), jsonmapper.Subtree(func(sub *jsonmapper.Mapper) (string, error) {
		_, isNumber := sub.Value().(float64)
		if !isNumber {
			return "other", nil
		}
		return "number", nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "number", kind)
}

func TestSliceAbortsOnFirstFailure(t *testing.T) {
	m := mustParse(t, []byte(`{"ids": ["1", "x", "3"]}`))

	_, err := jsonmapper.Map(m, jsonmapper.NewPath("ids"), jsonmapper.Slice(jsonmapper.IntFromString()))
	require.True(t, jsonmapper.IsTypeMismatch(err))

	var merr *jsonmapper.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "$.ids[1]", merr.Path.String())
	assert.Equal(t, "x", merr.Value)
}

func TestLenientSliceSkipsFailedItems(t *testing.T) {
	m := mustParse(t, []byte(`{"ids": ["1", "x", "3"]}`))

	got, err := jsonmapper.Map(m, jsonmapper.NewPath("ids"), jsonmapper.LenientSlice(jsonmapper.IntFromString()))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, got)
}

func TestSliceRequiresSequence(t *testing.T) {
	m := mustParse(t, sampleJSON)

	_, err := jsonmapper.Map(m, jsonmapper.NewPath("store", "bicycle"), jsonmapper.Slice(jsonmapper.Float()))
	require.True(t, jsonmapper.IsTypeMismatch(err))

	var merr *jsonmapper.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "$.store.bicycle", merr.Path.String())
	assert.Equal(t, "sequence", merr.Expected)
	assert.Equal(t, "mapping", merr.Actual)
}

func TestSubtreeSlice(t *testing.T) {
	m := mustParse(t, sampleJSON)

	titles, err := jsonmapper.Map(m, jsonmapper.NewPath("store", "book"), jsonmapper.SubtreeSlice(func(sub *jsonmapper.Mapper) (string, error) {
		return jsonmapper.Map(sub, jsonmapper.NewPath("title"), jsonmapper.String())
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sayings of the Century", "Sword of Honour"}, titles)
}

func TestEnumMissingCase(t *testing.T) {
	m := mustParse(t, []byte(`{"role": "superuser", "level": 3}`))

	// Required access never swallows an unmatched case.
	_, err := jsonmapper.Map(m, jsonmapper.NewPath("role"), roleTransform())
	require.True(t, jsonmapper.IsMissingCase(err))

	var merr *jsonmapper.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "$.role", merr.Path.String())
	assert.Equal(t, "superuser", merr.Value)

	// A raw value of the wrong shape is a mismatch, not a missing case.
	_, err = jsonmapper.Map(m, jsonmapper.NewPath("level"), roleTransform())
	require.True(t, jsonmapper.IsTypeMismatch(err))
}

func TestEnumMatch(t *testing.T) {
	m := mustParse(t, []byte(`{"role": "admin"}`))

	got, err := jsonmapper.Map(m, jsonmapper.NewPath("role"), roleTransform())
	require.NoError(t, err)
	assert.Equal(t, roleAdmin, got)
}
