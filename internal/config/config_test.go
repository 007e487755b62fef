package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default("https://fintrail.example.com")
	cfg.Profile.CurrentAge = 30
	cfg.Profile.TargetAge = 50
	cfg.Defaults.StatementDir = "/home/u/statements"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fintrail.example.com", loaded.Server.URL)
	assert.Equal(t, 30, loaded.Profile.CurrentAge)
	assert.Equal(t, 50, loaded.Profile.TargetAge)
	assert.Equal(t, 20, loaded.Defaults.PageLimit)
	assert.Equal(t, "/home/u/statements", loaded.Defaults.StatementDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default("http://localhost:8080")
	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 20, cfg.Defaults.PageLimit)
	assert.Zero(t, cfg.Profile.CurrentAge)
}
