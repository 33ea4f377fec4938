// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Postgres captures the relational store connection.
type Postgres struct {
	URL string
}

// Redis captures the credit-check cache connection. An empty URL means Redis
// is not configured and the in-memory cache is used instead.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures the notification event stream. Empty brokers disable
// publishing and fall back to the in-memory sink.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Screening captures decision-engine tunables. CreditValidity is the reuse
// window for completed bureau results.
type Screening struct {
	ProviderTimeout time.Duration
	CreditValidity  time.Duration
	SimMinLatency   time.Duration
	SimMaxLatency   time.Duration
}

// Config aggregates all sections.
type Config struct {
	Server    Server
	Postgres  Postgres
	Redis     Redis
	Kafka     Kafka
	Screening Screening
}

// FromEnv builds a Config from environment variables with development-safe
// defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envOr("SICHRPLACE_ADDR", ":8080"),
		},
		Postgres: Postgres{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_SCREENING_TOPIC", "screening.decisions"),
		},
		Screening: Screening{
			ProviderTimeout: envDurationOr("SCREENING_PROVIDER_TIMEOUT", 15*time.Second),
			CreditValidity:  envDurationOr("SCREENING_CREDIT_VALIDITY", 90*24*time.Hour),
			SimMinLatency:   envDurationOr("SCREENING_SIM_MIN_LATENCY", 2*time.Second),
			SimMaxLatency:   envDurationOr("SCREENING_SIM_MAX_LATENCY", 5*time.Second),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
