package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Output formats accepted by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// SweepConfig holds the corner-radius sweep settings.
type SweepConfig struct {
	Radius  float64 `mapstructure:"radius"`
	Spread  float64 `mapstructure:"spread"`
	Lines   int     `mapstructure:"lines"`
	Samples int     `mapstructure:"samples"`
	Vehicle string  `mapstructure:"vehicle"`
}

// Config holds all runtime configuration for a laptime session.
// Values are populated from .laptime.yaml, LAPTIME_* env vars, and CLI flags.
type Config struct {
	Track    string      `mapstructure:"track"`
	Vehicles string      `mapstructure:"vehicles"`
	Circuit  bool        `mapstructure:"circuit"`
	Workers  int         `mapstructure:"workers"`
	Output   string      `mapstructure:"output"`
	LogLevel string      `mapstructure:"log_level"`
	Sweep    SweepConfig `mapstructure:"sweep"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("track", "")
	viper.SetDefault("vehicles", "")
	viper.SetDefault("circuit", true)
	viper.SetDefault("workers", 0)
	viper.SetDefault("output", OutputText)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("sweep.radius", 50.0)
	viper.SetDefault("sweep.spread", 10.0)
	viper.SetDefault("sweep.lines", 5)
	viper.SetDefault("sweep.samples", 100)
	viper.SetDefault("sweep.vehicle", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("config: output must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.Sweep.Lines < 1 || c.Sweep.Samples < 3 {
		return fmt.Errorf("config: sweep needs lines >= 1 and samples >= 3, got %d and %d", c.Sweep.Lines, c.Sweep.Samples)
	}
	return nil
}

// ParseLevel maps a config log level onto slog.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
}
