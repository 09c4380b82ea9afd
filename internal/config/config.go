package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/vytor/arithmetica/internal/logger"
)

type Config struct {
	Addr             string        `env:"ADDR" envDefault:"127.0.0.1:8080"`
	DBPath           string        `env:"DB_PATH" envDefault:"file:arithmetica.db"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"INFO"`
	LogColors        bool          `env:"LOG_COLORS" envDefault:"true"`
	TickInterval     time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	LeaderboardLimit int           `env:"LEADERBOARD_LIMIT" envDefault:"0"`
}

// Load reads configuration from a .env file (if present) and environment variables.
// Unset variables take their defaults; malformed ones are an error.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.TickInterval <= 0 {
		problems = append(problems, fmt.Sprintf("TICK_INTERVAL must be positive, got %s", c.TickInterval))
	}
	if c.LeaderboardLimit < 0 {
		problems = append(problems, fmt.Sprintf("LEADERBOARD_LIMIT must be >= 0, got %d", c.LeaderboardLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
