package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsHaveSaneSigns(t *testing.T) {
	cfg := DefaultConfig()
	assert.Greater(t, cfg.Weights.Lost, 0.0)
	assert.Greater(t, cfg.Weights.Empty, 0.0)
	assert.Greater(t, cfg.Weights.Merges, 0.0)
	assert.Greater(t, cfg.Weights.Mono, 0.0)
	assert.Greater(t, cfg.Weights.Sum, 0.0)
	assert.Greater(t, cfg.Search.PruneThreshold, 0.0)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYamlOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "twenty48.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"weights:\n  empty: 300\nsearch:\n  prune-threshold: 0.001\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Weights.Empty)
	assert.Equal(t, 0.001, cfg.Search.PruneThreshold)
	// Untouched keys keep their defaults.
	assert.Equal(t, 200000.0, cfg.Weights.Lost)
}

func TestDumpRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, out, "prune-threshold")

	dir := t.TempDir()
	path := filepath.Join(dir, "dumped.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
