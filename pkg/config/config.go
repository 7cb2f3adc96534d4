// Package config holds the instance configuration for the tracelog core.
package config

import "time"

// Config holds the specific configuration for a tracelog instance.
type Config struct {
	Trace TraceConfig `yaml:"trace"`
	Redis RedisConfig `yaml:"redis"`
	HTTP  HTTPConfig  `yaml:"http"`
}

type TraceConfig struct {
	SourceName       string        `yaml:"source_name"`
	Level            string        `yaml:"level"` // verbose, info, warning, error, critical
	RetentionEnabled bool          `yaml:"retention_enabled"`
	RetentionWindow  time.Duration `yaml:"retention_window"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"` // PubSub channel for published lines
}

type HTTPConfig struct {
	CollectorURL string            `yaml:"collector_url"`
	Headers      map[string]string `yaml:"headers"`
}

// DefaultConfig returns a safe default configuration. Redis and HTTP sinks
// stay disabled until an address or URL is set.
func DefaultConfig() *Config {
	return &Config{
		Trace: TraceConfig{
			SourceName:       "tracelog",
			Level:            "info",
			RetentionEnabled: true,
			RetentionWindow:  5 * time.Minute,
		},
		Redis: RedisConfig{
			Channel: "tracelog_lines",
		},
	}
}
