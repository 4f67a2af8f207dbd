// Package config reads server and client settings from the environment,
// after loading a .env file if one is present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/rigbudget/internal/localstore"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// devSecret signs tokens when RIGBUDGET_JWT_SECRET is unset. Fine for local
// use only.
const devSecret = "rigbudget-dev-secret-change-me"

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr        string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
}

// ClientConfig configures cmd/rigbudget.
type ClientConfig struct {
	ServerURL string
	StatePath string
	SaveDelay time.Duration
}

// LoadEnv loads .env files into the environment if they exist. Variables that
// are already set win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not load .env", "error", err)
	}
}

// LoadServer reads the server configuration.
func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:        getEnv("RIGBUDGET_ADDR", ":8080"),
		DBDriver:    strings.ToLower(getEnv("RIGBUDGET_DB_DRIVER", DriverSQLite)),
		DBPath:      getEnv("RIGBUDGET_DB_PATH", "./data/rigbudget.db"),
		DatabaseURL: getEnv("RIGBUDGET_DATABASE_URL", ""),
		JWTSecret:   getEnv("RIGBUDGET_JWT_SECRET", ""),
	}

	ttl, err := getDuration("RIGBUDGET_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return ServerConfig{}, err
	}
	cfg.TokenTTL = ttl

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return ServerConfig{}, errors.New("RIGBUDGET_DATABASE_URL is required for the postgres driver")
		}
	default:
		return ServerConfig{}, fmt.Errorf("unknown RIGBUDGET_DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		slog.Warn("RIGBUDGET_JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devSecret
	}
	return cfg, nil
}

// LoadClient reads the client configuration.
func LoadClient() (ClientConfig, error) {
	delay, err := getDuration("RIGBUDGET_SAVE_DELAY", time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	return ClientConfig{
		ServerURL: strings.TrimRight(getEnv("RIGBUDGET_SERVER_URL", "http://localhost:8080"), "/"),
		StatePath: getEnv("RIGBUDGET_STATE_PATH", localstore.DefaultPath()),
		SaveDelay: delay,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
