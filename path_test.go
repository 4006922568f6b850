package jsonmapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonmapper "github.com/njchilds90/go-jsonmapper"
)

func TestNewPathFlattening(t *testing.T) {
	inner := jsonmapper.NewPath("book", 0)
	p := jsonmapper.NewPath("store", inner, jsonmapper.Key("title"))

	require.Len(t, p, 4)
	assert.Equal(t, "$.store.book[0].title", p.String())
	assert.True(t, p[0].IsKey())
	assert.Equal(t, "store", p[0].Key())
	assert.False(t, p[2].IsKey())
	assert.Equal(t, 0, p[2].Index())
}

func TestNewPathNestedSlices(t *testing.T) {
	p := jsonmapper.NewPath([]interface{}{"a", []interface{}{"b", 1}}, "c")
	assert.Equal(t, "$.a.b[1].c", p.String())
}

func TestNewPathUnsupportedPartPanics(t *testing.T) {
	assert.Panics(t, func() {
		jsonmapper.NewPath(3.14)
	})
}

func TestEmptyPathString(t *testing.T) {
	assert.Equal(t, "$", jsonmapper.Path{}.String())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$", "$"},
		{"$.store.book[0].title", "$.store.book[0].title"},
		{"store.book[0]", "$.store.book[0]"},
		{"$['store']['book'][2]", "$.store.book[2]"},
		{`$["a b"].c`, "$.a b.c"},
	}
	for _, tt := range tests {
		p, err := jsonmapper.ParsePath(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, p.String(), "input %q", tt.input)
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, input := range []string{"$.", "$.a[", "$.a[x]", "$.a[-1]", "$[1"} {
		_, err := jsonmapper.ParsePath(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, jsonmapper.IsTransformFailed(err), "input %q", input)
	}
}

func TestMustParsePathPanics(t *testing.T) {
	assert.Panics(t, func() {
		jsonmapper.MustParsePath("$.a[")
	})
	assert.NotPanics(t, func() {
		jsonmapper.MustParsePath("$.a[0]")
	})
}
