package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds environment-driven configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Query    QueryConfig    `yaml:"query"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"ADDR"                    env-default:":5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects the entry store and holds PostgreSQL settings.
type DatabaseConfig struct {
	Storage         string        `yaml:"storage"           env:"STORAGE"                    env-default:"postgres"`
	URL             string        `yaml:"url"               env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"    env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"1h"`
}

// CORSConfig mirrors the fiber cors middleware settings.
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods string `yaml:"allow_methods" env:"CORS_ALLOW_METHODS" env-default:"GET,POST,HEAD,PUT,DELETE,PATCH"`
	AllowHeaders string `yaml:"allow_headers" env:"CORS_ALLOW_HEADERS" env-default:"Origin, Content-Type, Accept"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// QueryConfig tunes list requests.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"QUERY_DEFAULT_LIMIT" env-default:"10"`
	MaxLimit     int `yaml:"max_limit"     env:"QUERY_MAX_LIMIT"     env-default:"100"`
	// StrictFilters rejects malformed filter values with 400 instead of
	// ignoring them.
	StrictFilters bool `yaml:"strict_filters" env:"QUERY_STRICT_FILTERS" env-default:"false"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables. Priority: ENV > YAML > defaults.
// The YAML path comes from CONFIG_PATH (fallback "./config.yaml"); a missing
// file is only an error when CONFIG_PATH was set explicitly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	switch c.Database.Storage {
	case StoragePostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q (want %q or %q)", c.Database.Storage, StoragePostgres, StorageMemory)
	}

	if c.Query.DefaultLimit <= 0 {
		return fmt.Errorf("query.default_limit must be > 0 (got %d)", c.Query.DefaultLimit)
	}
	if c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("query.max_limit must be >= default_limit (got %d < %d)", c.Query.MaxLimit, c.Query.DefaultLimit)
	}
	return nil
}
