package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kavoyan/queuectl/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(3), cfg.MaxRetries())
	require.Equal(t, 2.0, cfg.BackoffBase())
}

func TestSetCoercesIntsAndFloats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("max_retries", "5"))
	require.Equal(t, uint32(5), cfg.MaxRetries())

	require.NoError(t, cfg.Set("backoff_base", "1.5"))
	require.Equal(t, 1.5, cfg.BackoffBase())

	require.NoError(t, cfg.Set("data_dir", "somewhere"))
	require.Equal(t, "somewhere", cfg.DataDir())
}

func TestSetPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("max_retries", "7"))

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(7), reloaded.MaxRetries())
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, writeRaw(path, "not json"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(3), cfg.MaxRetries())
}

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
