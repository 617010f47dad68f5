package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Name is the name of the application the logger is created for.
type Name string

// Config is the configuration for the logger.
type Config struct {
	// appName is the name of the application.
	appName string

	// level is the minimum level that is logged.
	level slog.Level

	// w is where the logs are written.
	w io.Writer
}

// NewConfig creates a new logger configuration for the given application.
//
// The level is read from the LOG_LEVEL environment variable, defaulting to info.
func NewConfig(name Name) *Config {
	return &Config{
		appName: string(name),
		level:   ParseLevel(os.Getenv(EnvLogLevel)),
		w:       os.Stdout,
	}
}

// WithWriter sets the writer the logger writes to.
func (c *Config) WithWriter(w io.Writer) *Config {
	c.w = w
	return c
}

// WithLevel sets the minimum level of the logger.
func (c *Config) WithLevel(level slog.Level) *Config {
	c.level = level
	return c
}

// CommonLogger creates the JSON logger used throughout the application and sets it as the default.
func CommonLogger(cfg *Config) (*slog.Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("logger config is nil")
	}

	if cfg.appName == "" {
		return nil, fmt.Errorf("logger app name is empty")
	}

	w := cfg.w
	if w == nil {
		w = os.Stdout
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: cfg.level == slog.LevelDebug,
		Level:     cfg.level,
	})

	l := slog.New(h).With(slog.String(KeyApp, cfg.appName))
	slog.SetDefault(l)
	return l, nil
}

// ParseLevel converts a level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
