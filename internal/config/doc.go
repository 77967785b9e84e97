// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps environment variables to the Config
// struct with sensible defaults. Numeric values that are absent or unparsable
// fall back to their defaults.
package config
