// Package config loads server configuration from the environment, with
// struct-tag defaults for every field a deployment hasn't overridden.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full set of environment-tunable server settings.
type Config struct {
	ListenAddr string `env:"NOVA_LISTEN_ADDR" envDefault:":7777"`
	MetricsAddr string `env:"NOVA_METRICS_ADDR" envDefault:":9090"`

	MaxPeers      int `env:"NOVA_MAX_PEERS" envDefault:"256"`
	TickRate      int `env:"NOVA_TICK_RATE" envDefault:"60"`

	WorldWidth  float64 `env:"NOVA_WORLD_WIDTH" envDefault:"1280"`
	WorldHeight float64 `env:"NOVA_WORLD_HEIGHT" envDefault:"720"`
	BoundsMargin float64 `env:"NOVA_BOUNDS_MARGIN" envDefault:"64"`

	MatchmakingMinPlayers int `env:"NOVA_MM_MIN_PLAYERS" envDefault:"2"`
	MatchmakingMaxPlayers int `env:"NOVA_MM_MAX_PLAYERS" envDefault:"4"`

	InactivityTimeoutSeconds int `env:"NOVA_INACTIVITY_TIMEOUT_SECONDS" envDefault:"120"`

	AccountStorePath string `env:"NOVA_ACCOUNT_STORE_PATH" envDefault:"./data/accounts.json"`
	SessionSecret    string `env:"NOVA_SESSION_SECRET,required"`
	SessionTTLHours  int    `env:"NOVA_SESSION_TTL_HOURS" envDefault:"24"`

	LogLevel string `env:"NOVA_LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"NOVA_LOG_PRETTY" envDefault:"false"`
}

// Load parses Config from the process environment, applying envDefault
// tags for anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
