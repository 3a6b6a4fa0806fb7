// Package config loads and models the daemon's runtime settings.
package config

import (
	"log/slog"
	"time"
)

// Config aggregates all runtime settings.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"database"`
	Provider ProviderConfig `mapstructure:"provider"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// HTTPConfig defines the status/settings listener.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig defines slog handler behavior.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// DBConfig defines the persistence layer.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// ProviderConfig defines the delivery provider connection.
type ProviderConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Cookie     string        `mapstructure:"cookie"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// WebhookConfig defines the external notification sink.
type WebhookConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TrackerConfig defines the poll cycle cadence.
type TrackerConfig struct {
	Schedule string `mapstructure:"schedule"`
}

// MetricsConfig defines Prometheus exposure.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// SlogLevel maps the configured level string onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
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
