package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessorsWithDefaults(t *testing.T) {
	cfg := New(map[string]any{
		"name":    "sales",
		"enabled": false,
		"limit":   250,
		"ratio":   0.5,
	})

	assert.Equal(t, "sales", cfg.String("name", "x"))
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
	assert.Equal(t, "fallback", cfg.String("limit", "fallback"), "wrong type falls back")

	assert.False(t, cfg.Bool("enabled", true))
	assert.True(t, cfg.Bool("missing", true))

	assert.Equal(t, 250, cfg.Int("limit", 1))
	assert.Equal(t, 1, cfg.Int("missing", 1))
	assert.Equal(t, 1, cfg.Int("ratio", 1), "fractional float does not convert")

	assert.Equal(t, 0.5, cfg.Float("ratio", 0))
	assert.Equal(t, 250.0, cfg.Float("limit", 0))

	assert.True(t, cfg.Has("name"))
	assert.False(t, cfg.Has("nope"))
}

func TestIntFromWholeFloat(t *testing.T) {
	// YAML/JSON decoders often hand back float64 for numbers.
	cfg := New(map[string]any{"limit": float64(100)})
	assert.Equal(t, 100, cfg.Int("limit", 1))
}

func TestSub(t *testing.T) {
	cfg := New(map[string]any{
		"registry": map[string]any{
			"cache_enabled": false,
			"cache_limit":   10,
		},
	})

	sub := cfg.Sub("registry")
	assert.False(t, sub.Bool("cache_enabled", true))
	assert.Equal(t, 10, sub.Int("cache_limit", 1))

	// Missing or non-map sections are empty, not nil.
	assert.Equal(t, 5, cfg.Sub("missing").Int("x", 5))
}

func TestNilConfig(t *testing.T) {
	cfg := New(nil)
	assert.Equal(t, "d", cfg.String("k", "d"))
	assert.NotNil(t, cfg.Raw())
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("cache_enabled: true\ncache_limit: 500\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Bool("cache_enabled", false))
	assert.Equal(t, 500, cfg.Int("cache_limit", 1))

	_, err = FromYAML([]byte(":\tnot yaml"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"cache_limit": 42}`))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Int("cache_limit", 1))

	_, err = FromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("cache_limit: 7"), 0o644))
	cfg, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Int("cache_limit", 1))

	jsonPath := filepath.Join(dir, "engine.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"cache_limit": 8}`), 0o644))
	cfg, err = FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Int("cache_limit", 1))

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "engine.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = FromFile(txtPath)
	assert.Error(t, err)
}
