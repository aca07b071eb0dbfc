package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructLookup(t *testing.T) {
	v := NewStruct(map[string]Value{
		"name": String("ada"),
		"age":  Int(36),
	})
	st := v.Struct()

	got, ok := st.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "ada", got.Str())

	_, ok = st.Lookup("missing")
	assert.False(t, ok)

	assert.True(t, st.Has("age"))
	assert.False(t, st.Has("Age"))
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, []string{"age", "name"}, st.Names())
}

func TestSymbolInterning(t *testing.T) {
	a := NewStruct(map[string]Value{"shared_key": Int(1)}).Struct()
	b := NewStruct(map[string]Value{"shared_key": Int(2)}).Struct()

	// Same name, same interned symbol across records.
	symA := a.byName["shared_key"]
	symB := b.byName["shared_key"]
	require.NotNil(t, symA)
	assert.Same(t, symA, symB)
	assert.Equal(t, "shared_key", symA.Name())

	// Pointer-keyed fields resolve through the shared symbol.
	got, ok := b.Get(symA)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Int64())
}

func TestLookupNeverInterns(t *testing.T) {
	st := NewStruct(map[string]Value{"known": Int(1)}).Struct()

	name := "definitely_not_a_struct_key_470012"
	_, preExisting := symtab.Load(name)
	require.False(t, preExisting)

	_, ok := st.Lookup(name)
	assert.False(t, ok)

	// The miss must not have grown the intern table.
	_, created := symtab.Load(name)
	assert.False(t, created)
}

func TestStructRendering(t *testing.T) {
	v := NewStruct(map[string]Value{"b": Int(2), "a": Int(1)})
	assert.Equal(t, "{a: 1, b: 2}", v.String())
}
