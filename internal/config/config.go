// Package config loads draftctl settings from DRAFT_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/store"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// Config holds process-wide settings. Command line flags override them.
type Config struct {
	LogLevel    string        `env:"DRAFT_LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"DRAFT_LOG_FORMAT" envDefault:"text"`
	StorePath   string        `env:"DRAFT_STORE_PATH" envDefault:"draft.db"`
	Compression string        `env:"DRAFT_COMPRESSION" envDefault:"xz"`
	CacheSize   int           `env:"DRAFT_CACHE_SIZE" envDefault:"64"`
	CacheTTL    time.Duration `env:"DRAFT_CACHE_TTL" envDefault:"10m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return &drafterrors.ValidationError{Field: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"}
	}
	if _, ok := logging.ParseFormat(c.LogFormat); !ok {
		return &drafterrors.ValidationError{Field: "log_format", Value: c.LogFormat, Message: "must be text or json"}
	}
	if c.StorePath == "" {
		return drafterrors.NewValidation("store_path", "must not be empty")
	}
	if _, err := store.ParseCompression(c.Compression); err != nil {
		return &drafterrors.ValidationError{Field: "compression", Value: c.Compression, Message: err.Error(), Err: err}
	}
	if c.CacheSize < 0 {
		return drafterrors.NewValidation("cache_size", "must not be negative")
	}
	if c.CacheTTL < 0 {
		return drafterrors.NewValidation("cache_ttl", "must not be negative")
	}
	return nil
}

// InitLogging configures the global logger from LogLevel and LogFormat.
func (c Config) InitLogging() {
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	logging.InitLogger(level, format)
}

// StoreConfig returns the store configuration these settings describe.
func (c Config) StoreConfig() store.Config {
	cfg := store.DefaultConfig(c.StorePath)
	if comp, err := store.ParseCompression(c.Compression); err == nil {
		cfg.Compression = comp
	}
	cfg.CacheSize = c.CacheSize
	cfg.CacheTTL = c.CacheTTL
	return cfg
}
