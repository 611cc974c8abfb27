package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http-port: :8080\n"), 0644))

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NotEmpty(t, realpath)

	// 文件中指定的值生效
	assert.Equal(t, ":8080", cfg.Server.HttpPort)

	// 未指定的值回落到默认
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 10, cfg.App.DefaultPageSize)
	assert.Equal(t, 100, cfg.App.MaxPageSize)
	assert.Equal(t, "30d", cfg.App.TrashRetentionTime)
	assert.Equal(t, "0 3 * * *", cfg.App.TrashPurgeCron)
	assert.False(t, cfg.Tracer.Enabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0644))

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}
