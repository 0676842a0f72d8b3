package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	FollowOnAsk    = "ask"
	FollowOnAlways = "always"
	FollowOnNever  = "never"
)

type Config struct {
	DBPath           string        `env:"DB_PATH" envDefault:"cricket.db"`
	ServerPort       string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	RosterPath       string        `env:"ROSTER_PATH" envDefault:"squads.yaml"`
	MatchSeed        uint64        `env:"MATCH_SEED" envDefault:"0"`
	ReplayInterval   time.Duration `env:"REPLAY_INTERVAL" envDefault:"400ms"`
	ResultWebhookURL string        `env:"RESULT_WEBHOOK_URL"`
	SeriesWorkers    int           `env:"SERIES_WORKERS" envDefault:"4"`
	FollowOnPolicy   string        `env:"FOLLOW_ON_POLICY" envDefault:"ask"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("roster_path", cfg.RosterPath).
		Uint64("match_seed", cfg.MatchSeed).
		Dur("replay_interval", cfg.ReplayInterval).
		Bool("webhook_enabled", cfg.ResultWebhookURL != "").
		Int("series_workers", cfg.SeriesWorkers).
		Str("follow_on_policy", cfg.FollowOnPolicy).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse reads the process environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.FollowOnPolicy {
	case FollowOnAsk, FollowOnAlways, FollowOnNever:
	default:
		return fmt.Errorf("FOLLOW_ON_POLICY must be one of ask, always, never: got %q", c.FollowOnPolicy)
	}
	if c.SeriesWorkers < 1 {
		return fmt.Errorf("SERIES_WORKERS must be positive: got %d", c.SeriesWorkers)
	}
	if c.ReplayInterval < 0 {
		return fmt.Errorf("REPLAY_INTERVAL must not be negative")
	}
	return nil
}
