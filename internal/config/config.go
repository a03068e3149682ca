// Package config loads runtime settings from the environment and builds
// the process logger.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings. Command-line flags override the
// environment after Load returns.
type Config struct {
	Database        string        `env:"RECIPEBOT_DB" envDefault:"recipes.db"`
	Addr            string        `env:"RECIPEBOT_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"RECIPEBOT_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"RECIPEBOT_LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"RECIPEBOT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("config: database path is empty")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: listen address is empty")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: invalid log format %q: must be text or json", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// NewLogger builds a slog.Logger writing to w. verbose forces debug level.
func NewLogger(c Config, w io.Writer, verbose bool) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q: %w", s, err)
	}
	return level, nil
}
