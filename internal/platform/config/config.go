package config

import (
	"os"
	"strings"
	"time"
)

// Config captures server and collaborator configuration.
type Config struct {
	Addr string

	// DatabaseURL selects the Postgres rule set store; empty falls back to
	// the in-memory store (development and tests).
	DatabaseURL string

	// RedisURL enables the explanation cache; empty disables it.
	RedisURL       string
	ExplanationTTL time.Duration

	// KafkaBrokers enables the Kafka audit sink; empty keeps the trail in
	// memory.
	KafkaBrokers []string
	AuditTopic   string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:           envOr("VISAPATH_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ExplanationTTL: durationOr("EXPLANATION_CACHE_TTL", 24*time.Hour),
		AuditTopic:     envOr("AUDIT_TOPIC", "visapath.audit"),
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:      envOr("JWT_ISSUER", "visapath"),
		JWTAudience:    envOr("JWT_AUDIENCE", "visapath-admin"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
