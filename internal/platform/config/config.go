// Package config builds runtime configuration from environment variables so
// main stays lean. Absent optional backends (postgres, redis, kafka) leave the
// service running on in-memory stores, which is the development default.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Postgres captures the relational store configuration. An empty DSN selects
// the in-memory stores.
type Postgres struct {
	DSN string
}

// Redis captures the norm-pack cache configuration. An empty URL disables the
// shared cache; resolution then hits the store on every call.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// Kafka captures the decision-log broker configuration. Empty brokers disable
// publishing; decision events still persist to the audit store.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Health captures the circuit-breaker thresholds for the system health gate.
type Health struct {
	CheckInterval    time.Duration
	FailureThreshold int
}

// Config is the full service configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Health   Health
}

// FromEnv builds the configuration from environment variables, applying
// development defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("IMEXSPEC_ADDR", ":8080"),
			ShutdownTimeout: envDuration("IMEXSPEC_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			DSN: os.Getenv("IMEXSPEC_POSTGRES_DSN"),
		},
		Redis: Redis{
			URL:          os.Getenv("IMEXSPEC_REDIS_URL"),
			PoolSize:     envInt("IMEXSPEC_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("IMEXSPEC_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("IMEXSPEC_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("IMEXSPEC_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("IMEXSPEC_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("IMEXSPEC_NORM_CACHE_TTL", 5*time.Minute),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(os.Getenv("IMEXSPEC_KAFKA_BROKERS")),
			Topic:   envOr("IMEXSPEC_KAFKA_TOPIC", "imexspec.decision-log"),
		},
		Health: Health{
			CheckInterval:    envDuration("IMEXSPEC_HEALTH_INTERVAL", 5*time.Minute),
			FailureThreshold: envInt("IMEXSPEC_HEALTH_FAILURE_THRESHOLD", 3),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitNonEmpty(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if part := csv[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
