// Package config loads process settings for the parley binary from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the CLI commands. Flags override these values.
type Config struct {
	LogLevel string `env:"PARLEY_LOG_LEVEL" envDefault:"info"`

	// StartNode is the node new sessions start on.
	StartNode    string `env:"PARLEY_START_NODE" envDefault:"start"`
	MaxInputSize int    `env:"PARLEY_MAX_INPUT_SIZE" envDefault:"4096"`
	AutoQuit     bool   `env:"PARLEY_AUTO_QUIT" envDefault:"true"`
	AutoLook     bool   `env:"PARLEY_AUTO_LOOK" envDefault:"true"`
	AutoHelp     bool   `env:"PARLEY_AUTO_HELP" envDefault:"true"`

	HTTPAddr string `env:"PARLEY_HTTP_ADDR" envDefault:":8080"`

	// RedisAddr switches keyed sessions to Redis when set.
	RedisAddr     string        `env:"PARLEY_REDIS_ADDR"`
	RedisPassword string        `env:"PARLEY_REDIS_PASSWORD"`
	RedisDB       int           `env:"PARLEY_REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"PARLEY_REDIS_PREFIX" envDefault:"parley:"`
	SessionTTL    time.Duration `env:"PARLEY_SESSION_TTL" envDefault:"30m"`

	// EncryptionKey seals shared session snapshots with AES-256-GCM when set (base64, 32 bytes).
	EncryptionKey          string   `env:"PARLEY_ENCRYPTION_KEY"`
	EncryptionFallbackKeys []string `env:"PARLEY_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`

	// IdleTimeout closes sessions without input for this long. Zero disables reaping.
	IdleTimeout  time.Duration `env:"PARLEY_IDLE_TIMEOUT" envDefault:"15m"`
	ReapInterval time.Duration `env:"PARLEY_REAP_INTERVAL" envDefault:"1m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
