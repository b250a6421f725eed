package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds promptshelf configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
	Storage    StorageCfg    `mapstructure:"storage" yaml:"storage"`
	Generation GenerationCfg `mapstructure:"generation" yaml:"generation"`
	Logging    LoggingCfg    `mapstructure:"logging" yaml:"logging"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// StorageCfg configures the prompt library.
type StorageCfg struct {
	// CascadeFavorites removes a prompt's favorite copy when the prompt is deleted.
	CascadeFavorites bool `mapstructure:"cascade_favorites" yaml:"cascade_favorites"`
	HistoryLimit     int  `mapstructure:"history_limit" yaml:"history_limit"`
}

// GenerationCfg configures the text generation backend.
type GenerationCfg struct {
	Provider string `mapstructure:"provider" yaml:"provider"` // "gemini" or "openai"
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"` // Optional endpoint override
	// APIKey is used when the user's settings carry no key (supports ${ENV_VAR} syntax).
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Model is used when the user's settings name no model.
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // 0 = no timeout
	RatePerMinute  int    `mapstructure:"rate_per_minute" yaml:"rate_per_minute"` // 0 = unlimited
}

// LoggingCfg configures the slog handler.
type LoggingCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Storage: StorageCfg{
			CascadeFavorites: false,
			HistoryLimit:     50,
		},
		Generation: GenerationCfg{
			Provider:       "gemini",
			APIKey:         "${GEMINI_API_KEY}",
			Model:          "gemini-2.0-flash",
			TimeoutSeconds: 0,
			RatePerMinute:  30,
		},
		Logging: LoggingCfg{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Storage.HistoryLimit <= 0 {
		return fmt.Errorf("storage.history_limit must be positive, got %d", c.Storage.HistoryLimit)
	}
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("generation.provider must be gemini or openai, got %q", c.Generation.Provider)
	}
	if c.Generation.TimeoutSeconds < 0 || c.Generation.RatePerMinute < 0 {
		return fmt.Errorf("generation timeout and rate must not be negative")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ResolvedAPIKey returns the fallback API key with ${ENV_VAR} references expanded.
func (g GenerationCfg) ResolvedAPIKey() string {
	return ResolveEnvVars(g.APIKey)
}

// Timeout returns the per-request timeout.
func (g GenerationCfg) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
