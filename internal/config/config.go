package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// MaxMessageLength bounds text message content in runes. It mirrors
	// the client-side limit, enforced authoritatively on the server.
	MaxMessageLength = 500

	// TokenTTL is the lifetime of an issued access token.
	TokenTTL = 72 * time.Hour
)

// Config holds the runtime settings of the server, read from the
// environment (a .env file is loaded by main before FromEnv runs).
type Config struct {
	Addr          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
}

// FromEnv builds a Config from environment variables, falling back to
// the local docker-compose defaults.
func FromEnv() *Config {
	return &Config{
		Addr: getenv("ADDR", ":8080"),
		DatabaseDSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "user"),
			getenv("DB_PASSWORD", "password"),
			getenv("DB_NAME", "chatmatedb"),
			getenv("DB_PORT", "5432"),
		),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
