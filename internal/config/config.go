package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// DefaultFeedURL is the public product transaction dataset.
const DefaultFeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Feed     FeedConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the connection string and pool sizing.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// FeedConfig points at the JSON dataset used by /init-db.
type FeedConfig struct {
	URL     string
	Timeout time.Duration
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "3000"),
			AllowedOrigins:  splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Feed: FeedConfig{
			URL:     getenvWithDefault("FEED_URL", DefaultFeedURL),
			Timeout: getDuration("FEED_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:      getenvWithDefault("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = dsnFromParts()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch {
	case c.Server.Port == "":
		return errors.New("APP_PORT must be provided")
	case c.Database.URL == "":
		return errors.New("DATABASE_URL must be provided")
	case c.Database.MaxOpenConns <= 0:
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	case c.Feed.URL == "":
		return errors.New("FEED_URL must not be empty")
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		c.Database.MaxIdleConns = c.Database.MaxOpenConns
	}

	return nil
}

// dsnFromParts builds a postgres URL from DB_* variables, URL-encoding the credentials.
func dsnFromParts() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getenvWithDefault("DB_USER", "postgres"), getenvWithDefault("DB_PASSWORD", "postgres")),
		Host:   getenvWithDefault("DB_HOST", "localhost") + ":" + getenvWithDefault("DB_PORT", "5432"),
		Path:   "/" + getenvWithDefault("DB_NAME", "roxiler"),
	}
	q := u.Query()
	q.Set("sslmode", getenvWithDefault("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := cast.ToIntE(os.Getenv(key))
	if err != nil || os.Getenv(key) == "" {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := cast.ToDurationE(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
