package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 360, cfg.Scan.Rays)
	assert.Equal(t, 6, cfg.Scan.MaxSkip)
	assert.Equal(t, 5.0, cfg.Scan.ToleranceUp)
	assert.Equal(t, 5.0, cfg.Scan.ToleranceDown)
	assert.False(t, cfg.Scan.StopOnMiss)
	assert.Greater(t, cfg.Scan.Workers, 0)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "cavityscan.yaml")

	cfg := DefaultConfig()
	cfg.Scan.Rays = 90
	cfg.Scan.StopOnMiss = true
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90, loaded.Scan.Rays)
	assert.True(t, loaded.Scan.StopOnMiss)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: ["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
