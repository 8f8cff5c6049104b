package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "backline.db", cfg.Database.DSN)
	assert.Equal(t, "09:00", cfg.Schedule.Open)
	assert.Equal(t, "21:00", cfg.Schedule.Close)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("server:\n  port: 9000\nschedule:\n  open: \"08:00\"\n")
	assert.NoError(t, os.WriteFile(path, body, 0o644))

	t.Setenv("DATABASE_URL", "postgres://x/y")

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "08:00", cfg.Schedule.Open)
	assert.Equal(t, "21:00", cfg.Schedule.Close) // defaulted
	assert.Equal(t, "postgres://x/y", cfg.Database.DSN)
}
