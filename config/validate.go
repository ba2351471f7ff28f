package config

import (
	"fmt"
	"time"

	"highway_inspector/capture"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be > 0 (got %d)", c.Server.MaxUploadMB)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if err := c.Watermark.validate(); err != nil {
		return fmt.Errorf("watermark: %w", err)
	}

	switch capture.Facing(c.Capture.Facing) {
	case capture.FacingUser, capture.FacingEnvironment:
	default:
		return fmt.Errorf("capture.facing must be user or environment (got %q)", c.Capture.Facing)
	}

	if c.Location.Timeout <= 0 {
		return fmt.Errorf("location.timeout must be > 0 (got %v)", c.Location.Timeout)
	}
	if c.Location.Fixed {
		if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
			return fmt.Errorf("location.latitude out of range (got %v)", c.Location.Latitude)
		}
		if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
			return fmt.Errorf("location.longitude out of range (got %v)", c.Location.Longitude)
		}
	}

	return nil
}

func (w *WatermarkConfig) validate() error {
	if w.Quality < 1 || w.Quality > 100 {
		return fmt.Errorf("quality must be in 1..100 (got %d)", w.Quality)
	}
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}
