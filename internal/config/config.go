// Package config provides configuration loading for the entitylogger binary.
//
// The refresh engine itself takes no configuration; everything here binds
// the host loop (database path, cadence, tick pacing, log level).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mmfb/entitylogger/internal/engine"
	"github.com/mmfb/entitylogger/internal/store"
)

// Config holds process configuration (read-only after load).
type Config struct {
	// Database is the SQLite snapshot file.
	Database string `yaml:"database,omitempty" env:"ENTITYLOGGER_DB"`

	// CadenceTicks is the number of loaded host ticks between cycles.
	CadenceTicks int `yaml:"cadence_ticks,omitempty" env:"ENTITYLOGGER_CADENCE"`

	// TickInterval paces the scripted host loop (50ms = 20 ticks per second).
	TickInterval time.Duration `yaml:"tick_interval,omitempty" env:"ENTITYLOGGER_TICK_INTERVAL"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" env:"ENTITYLOGGER_LOG_LEVEL"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Database:     store.DefaultPath,
		CadenceTicks: engine.DefaultCadence,
		TickInterval: 50 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then environment overrides. The result is validated
// before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
