package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "0.0.0.0"
  port: 9090
  shutdown_timeout: "5s"

database:
  path: "/tmp/inspector.db"

log:
  level: "debug"
  format: "json"

watermark:
  quality: 80
  timezone: "UTC"

capture:
  device_dir: "/dev/frames"
  facing: "user"

location:
  timeout: "2s"
  fixed: true
  latitude: -22.7
  longitude: -47.6

backup:
  dir: "/tmp/backups"
`

func TestLoad_FromYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, t.TempDir(), validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "/tmp/inspector.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 80, cfg.Watermark.Quality)
	assert.Equal(t, time.UTC, cfg.Watermark.Location())
	assert.Equal(t, "/dev/frames", cfg.Capture.DeviceDir)
	assert.Equal(t, "user", cfg.Capture.Facing)
	assert.Equal(t, 2*time.Second, cfg.Location.Timeout)
	assert.True(t, cfg.Location.Fixed)
	assert.Equal(t, -22.7, cfg.Location.Latitude)
	assert.Equal(t, "/tmp/backups", cfg.Backup.Dir)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/InspetorRodoviario.db", cfg.Database.Path)
	assert.Equal(t, 90, cfg.Watermark.Quality)
	assert.Equal(t, "America/Sao_Paulo", cfg.Watermark.Location().String())
	assert.Equal(t, "environment", cfg.Capture.Facing)
	assert.Equal(t, 5*time.Second, cfg.Location.Timeout)
	assert.False(t, cfg.Location.Fixed)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, t.TempDir(), validYAML))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080, MaxUploadMB: 32},
		Log:       LogConfig{Level: "info", Format: "text"},
		Watermark: WatermarkConfig{Quality: 90, Timezone: "UTC"},
		Capture:   CaptureConfig{Facing: "environment"},
		Location:  LocationConfig{Timeout: time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"upload", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"quality", func(c *Config) { c.Watermark.Quality = 101 }},
		{"timezone", func(c *Config) { c.Watermark.Timezone = "Mars/Olympus" }},
		{"facing", func(c *Config) { c.Capture.Facing = "side" }},
		{"timeout", func(c *Config) { c.Location.Timeout = 0 }},
		{"latitude", func(c *Config) { c.Location.Fixed = true; c.Location.Latitude = 91 }},
	}

	ok := validConfig()
	require.NoError(t, ok.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
