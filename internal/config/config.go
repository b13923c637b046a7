package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API      APIConfig
	Store    StoreConfig
	Session  SessionConfig
	Logging  LoggingConfig
	Requests RequestConfig
}

// APIConfig holds the remote backend connection settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StoreConfig holds the local message store connection settings
type StoreConfig struct {
	URL             string
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// SessionConfig holds the session preference file location
type SessionConfig struct {
	FilePath string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// RequestConfig bounds each triggered unit of work
type RequestConfig struct {
	Timeout time.Duration
}

// Load reads configuration from environment variables with sane defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("store.maxconns", 10)
	v.SetDefault("store.connmaxlifetime", 5*time.Minute)

	v.SetDefault("session.filepath", "carelink-session.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("requests.timeout", 15*time.Second)
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("api.baseurl", "CARELINK_API_URL")
	v.BindEnv("api.timeout", "CARELINK_API_TIMEOUT")

	v.BindEnv("store.url", "CARELINK_STORE_URL", "DATABASE_URL")
	v.BindEnv("store.maxconns", "CARELINK_STORE_MAX_CONNS")

	v.BindEnv("session.filepath", "CARELINK_SESSION_FILE")

	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")

	v.BindEnv("requests.timeout", "CARELINK_REQUEST_TIMEOUT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseurl is required")
	}

	if c.Store.URL == "" {
		return fmt.Errorf("store.url is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.Requests.Timeout <= 0 {
		return fmt.Errorf("requests.timeout must be positive")
	}

	return nil
}
