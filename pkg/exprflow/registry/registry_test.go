package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/exprflow/pkg/exprflow/config"
	"github.com/randalmurphal/exprflow/pkg/exprflow/value"
)

func constant(name string, v value.Value) FunctionImpl {
	return NewFunc(name, Fixed(0), func([]value.Value) (value.Value, error) {
		return v, nil
	})
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	assert.Equal(t, "", reg.ID(), "default registry uses the empty sentinel id")
	assert.True(t, reg.CacheEnabled())
	assert.Equal(t, DefaultCacheLimit, reg.CacheLimit())

	// The built-in library is present.
	for _, name := range []string{"abs", "sum", "concat", "if", "lookup"} {
		assert.True(t, reg.Has(name), name)
	}

	// Default() is a singleton.
	assert.Same(t, Default(), Default())
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New()
	b := New()
	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPluginsExtend(t *testing.T) {
	reg := New(WithPlugins(constant("my_const", value.Int(7))))

	fn, ok := reg.Resolve("my_const")
	require.True(t, ok)
	v, err := fn.Invoke(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int64())

	// Defaults are still there.
	assert.True(t, reg.Has("abs"))
}

func TestPluginsOverrideByName(t *testing.T) {
	reg := New(WithPlugins(
		constant("x", value.Int(1)),
		constant("x", value.Int(2)), // last writer wins
	))

	fn, ok := reg.Resolve("x")
	require.True(t, ok)
	v, err := fn.Invoke(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Int64())
}

func TestPluginOverridesDefaultWithoutLeaking(t *testing.T) {
	reg := New(WithPlugins(constant("abs", value.Int(0))))

	fn, _ := reg.Resolve("abs")
	assert.True(t, fn.Arity().IsVariadic() == false && fn.Arity().Count() == 0)

	// The default registry still has the real abs.
	fn, _ = Default().Resolve("abs")
	assert.Equal(t, 1, fn.Arity().Count())
}

func TestCacheOptions(t *testing.T) {
	reg := New(WithCacheEnabled(false), WithCacheLimit(25))
	assert.False(t, reg.CacheEnabled())
	assert.Equal(t, 25, reg.CacheLimit())

	// Non-positive limits are ignored.
	reg = New(WithCacheLimit(0))
	assert.Equal(t, DefaultCacheLimit, reg.CacheLimit())
	reg = New(WithCacheLimit(-5))
	assert.Equal(t, DefaultCacheLimit, reg.CacheLimit())
}

func TestFromConfig(t *testing.T) {
	cfg := config.New(map[string]any{
		"cache_enabled": false,
		"cache_limit":   50,
	})
	reg := FromConfig(cfg, constant("k", value.Null()))
	assert.False(t, reg.CacheEnabled())
	assert.Equal(t, 50, reg.CacheLimit())
	assert.True(t, reg.Has("k"))

	// Missing keys fall back to defaults.
	reg = FromConfig(config.New(nil))
	assert.True(t, reg.CacheEnabled())
	assert.Equal(t, DefaultCacheLimit, reg.CacheLimit())
}

func TestArity(t *testing.T) {
	assert.Equal(t, "1 argument", Fixed(1).String())
	assert.Equal(t, "3 arguments", Fixed(3).String())
	assert.Equal(t, "any number of arguments", Any().String())
	assert.True(t, Any().IsVariadic())
	assert.False(t, Fixed(2).IsVariadic())
	assert.Equal(t, 2, Fixed(2).Count())
}

func TestNames(t *testing.T) {
	reg := New()
	names := reg.Names()
	assert.Contains(t, names, "abs")
	assert.Contains(t, names, "textjoin")
	// Sorted output.
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestNewFuncValidation(t *testing.T) {
	assert.Panics(t, func() { NewFunc("", Fixed(0), func([]value.Value) (value.Value, error) { return value.Null(), nil }) })
	assert.Panics(t, func() { NewFunc("x", Fixed(0), nil) })
}
