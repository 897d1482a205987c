package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// Config holds process-wide settings for the CLI and the HTTP server.
type Config struct {
	DBPath            string
	LogLevel          slog.Level
	LogFormat         LogFormat
	LogUseCases       bool
	Addr              string
	CORSOrigins       []string
	ShutdownTimeoutMs int
	WatchDebounceMs   int
}

// DefaultConfig returns a Config with sensible defaults. The database lives
// under the user's home directory.
func DefaultConfig() Config {
	dbPath := "mindwell.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".mindwell", "mindwell.db")
	}
	return Config{
		DBPath:            dbPath,
		LogLevel:          slog.LevelInfo,
		LogFormat:         LogText,
		LogUseCases:       false,
		Addr:              ":8080",
		CORSOrigins:       []string{"*"},
		ShutdownTimeoutMs: 5000,
		WatchDebounceMs:   150,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or unparseable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MINDWELL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MINDWELL_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("MINDWELL_LOG_FORMAT"); v != "" {
		switch f := LogFormat(strings.ToLower(v)); f {
		case LogText, LogJSON:
			cfg.LogFormat = f
		}
	}
	if v := os.Getenv("MINDWELL_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MINDWELL_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MINDWELL_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}
	applyPositiveIntEnv(&cfg.ShutdownTimeoutMs, "MINDWELL_SHUTDOWN_TIMEOUT_MS")
	applyPositiveIntEnv(&cfg.WatchDebounceMs, "MINDWELL_WATCH_DEBOUNCE_MS")

	return cfg
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// NewLogger builds the process logger. A nil writer discards output.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
