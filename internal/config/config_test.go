package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cubeengine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200*time.Millisecond, cfg.Move.Duration)

	tbl, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 12, tbl.Len())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvFallback(t *testing.T) {
	path := writeConfig(t, "move:\n  duration: 400ms\n")
	t.Setenv(EnvPath, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, cfg.Move.Duration)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
move:
  duration: 400ms
  easing: exponential
tick_rate: 10ms
bindings:
  - symbol: a
    axis: "+x"
    layer: -2
scene:
  path: /tmp/rubik.yaml
metrics:
  addr: ":2112"
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, cfg.Move.Duration)
	assert.Equal(t, "exponential", cfg.Move.Easing)
	assert.Equal(t, 10*time.Millisecond, cfg.TickRate)
	assert.Equal(t, "/tmp/rubik.yaml", cfg.Scene.Path)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	assert.Equal(t, "json", cfg.Log.Format)

	tbl, err := cfg.Table()
	require.NoError(t, err)
	mv, ok := tbl.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, geom.PosX, mv.Axis)
	_, ok = tbl.Resolve("w")
	assert.False(t, ok, "bindings replace the default table")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"easing":   "move:\n  easing: bounce\n",
		"tick":     "tick_rate: 0s\n",
		"duration": "move:\n  duration: -1s\n",
		"binding":  "bindings:\n  - symbol: a\n    axis: diagonal\n",
		"format":   "log:\n  format: xml\n",
	}
	for name, body := range tests {
		_, err := Load(writeConfig(t, body))
		assert.True(t, errors.Is(err, ErrInvalid), "%s: got %v", name, err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
