package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Stats    StatsConfig
	Prefs    PrefsConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	RateLimit int // requests per second, global
}

type UpstreamConfig struct {
	BaseURL         string
	FetchTimeout    time.Duration
	RetryMax        time.Duration // total backoff budget per request
	PollInterval    time.Duration
	DefaultInterval string // interval token for periodic refreshes
}

type StatsConfig struct {
	Timezone string // IANA name; bucketing and rollups resolve times here
}

type PrefsConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "localhost"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			RateLimit: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Upstream: UpstreamConfig{
			BaseURL:         getEnv("UPSTREAM_URL", "http://localhost:3001"),
			FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
			RetryMax:        getEnvDuration("FETCH_RETRY_MAX", 30*time.Second),
			PollInterval:    getEnvDuration("POLL_INTERVAL", 10*time.Minute),
			DefaultInterval: getEnv("DEFAULT_INTERVAL", "12h"),
		},
		Stats: StatsConfig{
			Timezone: getEnv("STATS_TIMEZONE", "UTC"),
		},
		Prefs: PrefsConfig{
			Path: getEnv("PREFS_DB_PATH", "./data/occ-dashboard.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream URL must be set")
	}
	if c.Upstream.PollInterval < time.Minute {
		return fmt.Errorf("poll interval must be at least 1 minute")
	}

	if _, err := time.LoadLocation(c.Stats.Timezone); err != nil {
		return fmt.Errorf("invalid stats timezone %q: %w", c.Stats.Timezone, err)
	}

	return nil
}

// StatsLocation resolves the configured timezone. Load has already validated
// it, so failure here is a programmer error.
func (c *Config) StatsLocation() *time.Location {
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		panic(fmt.Sprintf("config: timezone %q no longer loads: %v", c.Stats.Timezone, err))
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
