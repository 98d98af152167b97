package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig

	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL, default=file:9rib.db?cache=shared"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rib_marketplace"`
}

type RedisConfig struct {
	Addr              string        `env:"REDIS_ADDR,          default=localhost:6379"`
	Password          string        `env:"REDIS_PASSWORD"`
	DB                int           `env:"REDIS_DB,            default=0"`
	ViewDedupWindow   time.Duration `env:"VIEW_DEDUP_WINDOW,   default=1h"`
	ReferenceCacheTTL time.Duration `env:"REFERENCE_CACHE_TTL, default=10m"`
}

// SMTPConfig configures outgoing mail. An empty Host disables email delivery.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,     default=no-reply@9rib.ma"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a local .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &cfg, nil
}
