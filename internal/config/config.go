package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	LogLevel     string
	LogFormat    string
	MaxWSClients int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	maxClients := getEnv("MAX_WS_CLIENTS", "1000")
	n, err := strconv.Atoi(maxClients)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("MAX_WS_CLIENTS must be a positive integer, got %q", maxClients)
	}
	cfg.MaxWSClients = n

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
