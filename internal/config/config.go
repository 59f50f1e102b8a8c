// Package config loads the process configuration once at startup.
// Every component receives the values it needs from Config; nothing else reads
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all application settings.
type Config struct {
	Server    Server
	JWT       JWT
	Bcrypt    Bcrypt
	DB        DB
	Redis     Redis
	RabbitMQ  RabbitMQ
	RateLimit RateLimit
	Log       Log
}

type Server struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// JWT configures the token service. Secret is never logged.
type JWT struct {
	Secret     string        `env:"JWT_SECRET,required"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"messagely"`
}

type Bcrypt struct {
	Cost int `env:"BCRYPT_COST" envDefault:"10"`
}

type DB struct {
	Driver         string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME" envDefault:"messagely"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"./messagely.db"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
}

// Redis is optional. An empty Host disables the cache and the Redis deny-list.
type Redis struct {
	Host         string        `env:"REDIS_HOST"`
	Port         string        `env:"REDIS_PORT" envDefault:"6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
}

// RabbitMQ is optional. An empty URL disables message events.
type RabbitMQ struct {
	URL       string `env:"RABBITMQ_URL"`
	QueueName string `env:"RABBITMQ_QUEUE" envDefault:"message_events"`
}

type RateLimit struct {
	AuthLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.Bcrypt.Cost < bcrypt.MinCost || c.Bcrypt.Cost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}
