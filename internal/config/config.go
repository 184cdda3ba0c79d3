package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Every field has a default
// so that a bare `go run ./cmd/server` serves the catalog from a local
// SQLite file on 127.0.0.1:5000 and opens the viewer, like the original demo.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`        // application environment (dev/test/prod)
	Host     string `env:"APP_HOST" envDefault:"127.0.0.1"` // interface to bind the HTTP server
	Port     string `env:"APP_PORT" envDefault:"5000"`      // HTTP port to listen on
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`     // debug selects the development logger

	DB DBConfig

	Viewer ViewerConfig

	// RabbitMQURL enables the catalog.seeded notification when set.
	RabbitMQURL string `env:"RABBITMQ_URL"`

	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite or mysql
	Path   string `env:"DB_PATH" envDefault:"cars.db"`  // sqlite file
	User   string `env:"DB_USER" envDefault:"root"`
	Pass   string `env:"DB_PASS"`
	Host   string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port   string `env:"DB_PORT" envDefault:"3306"`
	Name   string `env:"DB_NAME" envDefault:"cars"`
}

// ViewerConfig controls the interactive viewer on the main goroutine.
type ViewerConfig struct {
	Enabled bool          `env:"VIEWER_ENABLED" envDefault:"true"`
	URL     string        `env:"VIEWER_URL"`     // empty derives http://Host:Port/cars
	Timeout time.Duration `env:"VIEWER_TIMEOUT"` // zero means no timeout
}

// Addr returns the host:port the HTTP server binds to.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads an optional .env file and then parses the environment into a
// Config.  Values already present in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	switch cfg.DB.Driver {
	case "sqlite", "mysql":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.Viewer.URL == "" {
		cfg.Viewer.URL = "http://" + cfg.Addr() + "/cars"
	}
	cfg.Cache.normalize()
	cfg.RateLimit.normalize()
	return cfg, nil
}
