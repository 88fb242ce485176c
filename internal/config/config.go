// Package config handles exporter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all exporter settings.
type Config struct {
	Export    ExportConfig    `yaml:"export"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ExportConfig holds output naming and batch settings.
type ExportConfig struct {
	OutputDir string   `yaml:"output_dir"` // Directory the OBJ files are written to
	Prefix    string   `yaml:"prefix"`
	Extension string   `yaml:"extension"`
	Templates []string `yaml:"templates"` // IDs or glob patterns exported by default
	Workers   int      `yaml:"workers"`
}

// CatalogueConfig holds the template catalogue location.
type CatalogueConfig struct {
	Path string `yaml:"path"` // Empty uses the built-in templates
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"` // Rotate the log file past this size
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"` // Gzip rotated files
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutputDir: "animal_models",
			Prefix:    "Animal_",
			Extension: ".obj",
			Templates: []string{
				"DEFAULT", "FLUFFY", "SLIME", "BEETLE", "BUNNY",
				"PIG", "TURTLE", "CRAB", "COW",
			},
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validation errors.
var (
	ErrNoOutputDir  = errors.New("export.output_dir is empty")
	ErrBadWorkers   = errors.New("export.workers must be at least 1")
	ErrBadLogLevel  = errors.New("unknown logging.level")
	ErrBadExtension = errors.New("export.extension must start with a dot")
	ErrBadRotation  = errors.New("logging rotation limits must not be negative")
)

// Validate checks the config for values the exporter cannot use.
func (c *Config) Validate() error {
	if c.Export.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrBadWorkers, c.Export.Workers)
	}
	if c.Export.Extension != "" && !strings.HasPrefix(c.Export.Extension, ".") {
		return fmt.Errorf("%w: %q", ErrBadExtension, c.Export.Extension)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return ErrBadRotation
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.Logging.Level)
	}
	return nil
}
