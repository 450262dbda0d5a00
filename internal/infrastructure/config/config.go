package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs every issued token. Loaded once here and never
	// mutated afterwards.
	JWTSecret  string        `env:"JWT_SECRET, required"`
	JWTIssuer  string        `env:"JWT_ISSUER,  default=birthday-keeper"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=3h"`
	BcryptCost int           `env:"BCRYPT_COST, default=12"`

	Mongo MongoConfig
	Redis RedisConfig
	Guard GuardConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=birthday_keeper"`
}

type RedisConfig struct {
	// Addr may be empty: the service then runs without the failed-login
	// guard and redis readiness check.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type GuardConfig struct {
	MaxFailures int           `env:"LOGIN_GUARD_MAX_FAILURES, default=10"`
	Window      time.Duration `env:"LOGIN_GUARD_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
