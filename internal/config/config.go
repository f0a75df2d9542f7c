// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration. Model provider settings live in the
// llm package, which resolves its own keys.
type Config struct {
	Addr         string   `env:"BTCED_ADDR" envDefault:":8080"`
	DBPath       string   `env:"BTCED_DB"`
	LogLevel     string   `env:"BTCED_LOG_LEVEL" envDefault:"info"`
	CORSOrigins  []string `env:"BTCED_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	PriceBaseURL string   `env:"BTCED_PRICE_BASE_URL"`
}

// Load reads .env (when present) and then the environment.
func Load() (Config, error) {
	// A missing .env is fine; the environment may be fully set already.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
