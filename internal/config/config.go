// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the engine's constants. They are read once at startup and
// never renegotiated mid-session.
type Config struct {
	LobbyTimeout time.Duration `env:"TRUTHIE_LOBBY_TIMEOUT" envDefault:"30s"`
	TurnTimeout  time.Duration `env:"TRUTHIE_TURN_TIMEOUT" envDefault:"30s"`
	TotalRounds  int           `env:"TRUTHIE_TOTAL_ROUNDS" envDefault:"3"`
	LogLevel     string        `env:"TRUTHIE_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TotalRounds < 1 {
		return Config{}, fmt.Errorf("total rounds must be >= 1, got %d", cfg.TotalRounds)
	}
	return cfg, nil
}
