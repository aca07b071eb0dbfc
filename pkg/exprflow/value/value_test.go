package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindBool, Bool(true).Kind())
	assert.Equal(t, KindInt, Int(1).Kind())
	assert.Equal(t, KindFloat, Float(1.5).Kind())
	assert.Equal(t, KindString, String("x").Kind())
	assert.Equal(t, KindList, List(Int(1)).Kind())
	assert.Equal(t, KindMap, Map(map[string]Value{"a": Int(1)}).Kind())
	assert.Equal(t, KindStruct, NewStruct(map[string]Value{"a": Int(1)}).Kind())

	// The zero Value is Null.
	var zero Value
	assert.True(t, zero.IsNull())
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"null is falsy", Null(), false},
		{"false is falsy", Bool(false), false},
		{"true is truthy", Bool(true), true},
		{"zero int is truthy", Int(0), true},
		{"zero float is truthy", Float(0), true},
		{"empty string is truthy", String(""), true},
		{"empty list is truthy", List(), true},
		{"empty map is truthy", Map(nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.Truthy())
		})
	}
}

func TestStringRendering(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(-42), "-42"},
		{Float(1.5), "1.5"},
		{Float(108), "108"},
		{String("hi"), "hi"},
		{List(Int(1), String("a")), "[1, a]"},
		{Map(map[string]Value{"b": Int(2), "a": Int(1)}), "{a: 1, b: 2}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.val.String())
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"n":    3,
		"f":    1.5,
		"s":    "x",
		"b":    true,
		"nil":  nil,
		"list": []any{1, "two", []any{3}},
	})
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind())

	m := v.Map()
	assert.Equal(t, KindInt, m["n"].Kind())
	assert.Equal(t, int64(3), m["n"].Int64())
	assert.Equal(t, KindFloat, m["f"].Kind())
	assert.Equal(t, KindString, m["s"].Kind())
	assert.True(t, m["b"].Bool())
	assert.True(t, m["nil"].IsNull())

	list := m["list"].List()
	require.Len(t, list, 3)
	assert.Equal(t, KindList, list[2].Kind())
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported Go type")

	assert.Panics(t, func() { MustFromAny(make(chan int)) })
}

func TestToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"n": int64(3),
		"s": "x",
		"l": []any{int64(1), int64(2)},
		"m": map[string]any{"k": "v"},
	}
	v, err := FromAny(in)
	require.NoError(t, err)
	assert.Equal(t, in, ToAny(v))
}

func TestValueSharing(t *testing.T) {
	// Lists share their backing slice: copying a Value is cheap.
	elems := []Value{Int(1), Int(2)}
	a := List(elems...)
	b := a
	assert.Same(t, &a.List()[0], &b.List()[0])
}
