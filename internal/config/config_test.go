package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 50, cfg.Capacity)
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STUDENTS_CAPACITY", "7")
	t.Setenv("STORAGE_BACKEND", "sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "env: prod\ncapacity: 10\nstorage:\n  backend: sqlite\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "env: staging\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Capacity)
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")

	_, err = Load(writeConfig(t, "capacity: -3\n"))
	assert.ErrorContains(t, err, "capacity must be positive")

	_, err = Load(writeConfig(t, "storage:\n  backend: postgres\n"))
	assert.ErrorContains(t, err, "storage.backend")
}
