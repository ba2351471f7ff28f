// Package logger configures the process-wide apex/log handler.
package logger

import (
	"io"
	"os"

	"highway_inspector/config"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Setup installs the handler and level from cfg, writing to stderr.
func Setup(cfg config.LogConfig) error {
	return SetupWriter(cfg, os.Stderr)
}

// SetupWriter is Setup with a custom output.
func SetupWriter(cfg config.LogConfig, w io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case "json":
		log.SetHandler(json.New(w))
	default:
		log.SetHandler(text.New(w))
	}
	log.SetLevel(level)
	return nil
}
