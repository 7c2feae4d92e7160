package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 50*time.Millisecond, cfg.Runtime.TickRate)
	assert.False(t, cfg.Selection.MultiSelect)
	assert.True(t, cfg.Selection.ExclusiveSelect)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[runtime]
tick_rate = "20ms"
max_frames = 120
manifest = "stage.yaml"

[selection]
multi_select = true

[logging]
level = "debug"
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Runtime.TickRate)
	assert.Equal(t, uint64(120), cfg.Runtime.MaxFrames)
	assert.Equal(t, "stage.yaml", cfg.Runtime.Manifest)
	assert.True(t, cfg.Selection.MultiSelect)
	assert.True(t, cfg.Selection.ExclusiveSelect) // untouched default
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadBadTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.toml")
	require.NoError(t, os.WriteFile(path, []byte("runtime = [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
