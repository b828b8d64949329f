package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,         default=8080"`
	Env       string `env:"ENV,          default=development"`
	SecretKey string `env:"SECRET_KEY,   required"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`

	DatabaseURL string `env:"DATABASE_URL, required"`

	Redis RedisConfig

	// Optional: when both are set, an ADMIN user is seeded at startup.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// SECRET_KEY and DATABASE_URL have no sane defaults and must be provided.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
