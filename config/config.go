package config

import (
	"time"
	_ "time/tzdata" // zone names resolve on hosts without a zoneinfo database
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Capture   CaptureConfig   `yaml:"capture"`
	Location  LocationConfig  `yaml:"location"`
	Backup    BackupConfig    `yaml:"backup"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadMB     int64         `yaml:"max_upload_mb"    env:"SERVER_MAX_UPLOAD_MB"    env-default:"32"`
}

// DatabaseConfig holds the local SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DATABASE_PATH" env-default:"data/InspetorRodoviario.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// WatermarkConfig holds compositor settings.
type WatermarkConfig struct {
	Quality  int    `yaml:"quality"  env:"WATERMARK_QUALITY"  env-default:"90"`
	Timezone string `yaml:"timezone" env:"WATERMARK_TIMEZONE" env-default:"America/Sao_Paulo"`
}

// Location resolves Timezone, falling back to the host zone when it is unknown.
func (w WatermarkConfig) Location() *time.Location {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// CaptureConfig holds the camera device settings. An empty DeviceDir disables
// capturing from the camera; uploaded frames still work.
type CaptureConfig struct {
	DeviceDir string `yaml:"device_dir" env:"CAPTURE_DEVICE_DIR"`
	Facing    string `yaml:"facing"     env:"CAPTURE_FACING"     env-default:"environment"`
}

// LocationConfig holds the position source. Without a fixed position every
// capture is saved without coordinates.
type LocationConfig struct {
	Timeout   time.Duration `yaml:"timeout"   env:"LOCATION_TIMEOUT"   env-default:"5s"`
	Fixed     bool          `yaml:"fixed"     env:"LOCATION_FIXED"     env-default:"false"`
	Latitude  float64       `yaml:"latitude"  env:"LOCATION_LATITUDE"`
	Longitude float64       `yaml:"longitude" env:"LOCATION_LONGITUDE"`
}

// BackupConfig holds where automatic backups are written.
type BackupConfig struct {
	Dir string `yaml:"dir" env:"BACKUP_DIR" env-default:"data/backups"`
}
