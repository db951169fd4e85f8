package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Database
	DatabaseURL      string
	DatabaseDriver   string
	SQLitePath       string
	DatabaseMaxConns int

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	// Redis
	RedisURL           string
	SuggestionCacheTTL time.Duration

	// RabbitMQ
	RabbitMQURL string

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Suggestions
	Timezone               string
	SuggestionsContextMode string
	SuggestionsLimit       int

	// Store circuit breaker
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Load loads configuration from environment variables, reading a .env file
// in the working directory first when there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "auto"),
		SQLitePath:       getEnv("SQLITE_PATH", defaultSQLitePath()),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 10),

		HTTPAddr:         getEnv("HTTP_ADDR", "127.0.0.1:8080"),
		HTTPReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),

		RedisURL:           getEnv("REDIS_URL", ""),
		SuggestionCacheTTL: getDurationEnv("SUGGESTION_CACHE_TTL", 2*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		Timezone:               getEnv("WHATSNEXT_TIMEZONE", "Local"),
		SuggestionsContextMode: getEnv("SUGGESTIONS_CONTEXT_MODE", "evaluate"),
		SuggestionsLimit:       getIntEnv("SUGGESTIONS_DEFAULT_LIMIT", 10),

		BreakerFailures: uint32(getIntEnv("SOURCE_BREAKER_FAILURES", 5)),
		BreakerTimeout:  getDurationEnv("SOURCE_BREAKER_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a closed set of options.
func (c *Config) Validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case "auto", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unknown driver %q", c.DatabaseDriver))
	}
	switch c.SuggestionsContextMode {
	case "evaluate", "store":
	default:
		errs = append(errs, fmt.Errorf("SUGGESTIONS_CONTEXT_MODE: unknown mode %q", c.SuggestionsContextMode))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat))
	}
	if c.SuggestionsLimit <= 0 {
		errs = append(errs, errors.New("SUGGESTIONS_DEFAULT_LIMIT must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("WHATSNEXT_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the time zone suggestions are computed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".whatsnext", "whatsnext.db")
	}
	return filepath.Join(home, ".whatsnext", "whatsnext.db")
}
