// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Storage backend kinds accepted in STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds application configuration values loaded from a config
// file. Environment variables are deliberately not consulted; the
// application configures itself from local files only.
type Config struct {
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DataDir        string `mapstructure:"DATA_DIR"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	InvitationCode string `mapstructure:"INVITATION_CODE"`
	HighlightLimit int    `mapstructure:"HIGHLIGHT_LIMIT"`
	SeedOnEmpty    bool   `mapstructure:"SEED_ON_EMPTY"`
}

// LoadConfig loads configuration from the first config.yml found in the
// given paths, falling back to the working directory, with defaults for
// every value.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// The config file is optional; defaults cover a full setup.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SQLITE_PATH", "moonglow.db")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("INVITATION_CODE", "moonglow2025")
	v.SetDefault("HIGHLIGHT_LIMIT", 2)
	v.SetDefault("SEED_ON_EMPTY", true)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendFile:
		if c.DataDir == "" {
			return errors.New("DATA_DIR is required for the file backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.InvitationCode == "" {
		return errors.New("INVITATION_CODE must not be empty")
	}
	if c.HighlightLimit < 1 {
		return errors.New("HIGHLIGHT_LIMIT must be at least 1")
	}
	return nil
}
