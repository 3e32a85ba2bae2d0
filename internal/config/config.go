package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Fetch     FetchConfig
	WS        WSConfig
	Settings  SettingsConfig
	Cache     CacheConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// FetchConfig holds page download configuration.
type FetchConfig struct {
	Timeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
	MaxBytes  int64         `envconfig:"FETCH_MAX_BYTES" default:"10485760"`
	UserAgent string        `envconfig:"FETCH_USER_AGENT" default:"EventScribe/1.0"`
}

// WSConfig holds WebSocket messaging configuration.
type WSConfig struct {
	// RequestTimeout bounds extraction per message; on expiry the handler
	// degrades to whatever partial data the selection alone provides.
	RequestTimeout time.Duration `envconfig:"WS_REQUEST_TIMEOUT" default:"1s"`
}

// SettingsConfig holds user preference persistence configuration.
type SettingsConfig struct {
	Path string `envconfig:"SETTINGS_PATH" default:""`
}

// CacheConfig holds extraction-result cache configuration.
type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"30m"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Fetch: FetchConfig{
			Timeout:   15 * time.Second,
			MaxBytes:  10 * 1024 * 1024,
			UserAgent: "EventScribe/1.0",
		},
		WS: WSConfig{
			RequestTimeout: time.Second,
		},
		Cache: CacheConfig{
			TTL: 30 * time.Minute,
		},
	}
}
