package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BARPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, []string{".csv", ".xlsx"}, cfg.Upload.Extensions)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BARPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BARPULSE_SERVER_PORT", "9090")
	t.Setenv("BARPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 9191\nlogging:\n  level: warn\n  format: text\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	t.Setenv("BARPULSE_CONFIG", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad port", key: "BARPULSE_SERVER_PORT", value: "0"},
		{name: "bad level", key: "BARPULSE_LOGGING_LEVEL", value: "verbose"},
		{name: "bad format", key: "BARPULSE_LOGGING_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BARPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPaths(PathsConfig{
		DataDir:    filepath.Join(dir, "data"),
		ExportsDir: filepath.Join(dir, "data", "exports"),
		LogsDir:    filepath.Join(dir, "logs"),
	})
	require.NoError(t, err)
	require.NoError(t, p.EnsureDirectories())

	assert.DirExists(t, p.ExportsDir)
	assert.Equal(t, filepath.Join(dir, "data", "exports", "x.csv"), p.GetExportPath("x.csv"))
	assert.False(t, FileExists(p.GetExportPath("x.csv")))
}
