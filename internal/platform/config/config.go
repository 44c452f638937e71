// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformstrings "mergington/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	StaticDir       string
	ShutdownTimeout time.Duration

	// Store selects the registry backend: "memory" (default), "postgres",
	// or "redis".
	Store       string
	PostgresDSN string
	RedisURL    string

	// KafkaBrokers enables the audit Kafka sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string
}

// FromEnv builds a Server config from environment variables, loading a local
// .env file first when one exists.
func FromEnv() Server {
	_ = godotenv.Load()

	cfg := Server{
		Addr:            getenv("ACTIVITIES_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		StaticDir:       getenv("STATIC_DIR", "static"),
		ShutdownTimeout: 10 * time.Second,
		Store:           getenv("ACTIVITIES_STORE", "memory"),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		AuditTopic:      getenv("AUDIT_TOPIC", "activity-audit"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = platformstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
