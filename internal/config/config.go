package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                   int    `env:"PORT" envDefault:"4000"`
	DatabaseURL            string `env:"DATABASE_URL,required"`
	RedisURL               string `env:"REDIS_URL"`
	RiotAPIKey             string `env:"RIOT_API_KEY"`
	SecretKey              string `env:"SECRET_KEY"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
	RefreshIntervalSeconds int    `env:"REFRESH_INTERVAL_SECONDS" envDefault:"0"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RefreshInterval is the period of the background refresh job; zero
// disables it and refreshes run only on request.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// CacheEnabled reports whether a Redis lookup cache should be wired in.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// Validate fails closed: without the cipher key or the Riot credential the
// process must not start, otherwise passwords would be stored unencrypted
// or every lookup would fail at request time.
func (c *Config) Validate(isProduction bool) error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.RiotAPIKey == "" {
		return fmt.Errorf("RIOT_API_KEY is required")
	}

	if isProduction && strings.HasPrefix(c.RedisURL, "redis://") {
		log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
