package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Provider names accepted in DATA_PROVIDER.
const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// Config holds environment-driven settings for the viewer service.
type Config struct {
	Port        int
	Provider    string
	DatabaseURL string
	SQLitePath  string
	BearerToken string
	LogLevel    string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:       8080,
		Provider:   ProviderMemory,
		SQLitePath: "./data/borelog.db",
		LogLevel:   "info",
	}

	if provider := os.Getenv("DATA_PROVIDER"); provider != "" {
		switch provider {
		case ProviderMemory, ProviderSQLite, ProviderPostgres:
			cfg.Provider = provider
		default:
			return cfg, fmt.Errorf("invalid DATA_PROVIDER: %s", provider)
		}
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.Provider == ProviderPostgres && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required when DATA_PROVIDER=postgres")
	}

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if _, err := zapcore.ParseLevel(level); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL: %s", level)
		}
		cfg.LogLevel = level
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
