package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort                = "8080"
	defaultBroadcastBufferSize = 100
	defaultMaxConnections      = 1024
	defaultConnRatePerSecond   = 16.0
	defaultConnBurst           = 32
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// BroadcastBufferSize is the per-subscriber buffer capacity of the
	// transactions broadcast channel.
	BroadcastBufferSize int

	// MaxConnections caps concurrent WebSocket connections per instance.
	MaxConnections int64

	// ConnRatePerSecond and ConnBurst bound the rate of new WebSocket
	// connections per client IP.
	ConnRatePerSecond float64
	ConnBurst         int
}

func Load() (*Config, error) {
	// Best-effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", defaultPort),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		BroadcastBufferSize: getEnvInt("BROADCAST_BUFFER_SIZE", defaultBroadcastBufferSize),
		MaxConnections:      int64(getEnvInt("MAX_CONNECTIONS", defaultMaxConnections)),
		ConnRatePerSecond:   getEnvFloat("CONN_RATE_PER_SECOND", defaultConnRatePerSecond),
		ConnBurst:           getEnvInt("CONN_BURST", defaultConnBurst),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the parsed value of key, or defaultValue when the
// variable is absent, unparsable, or not positive.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
