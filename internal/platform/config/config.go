package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr        string
	PostgresDSN string
	Redis       RedisConfig
	Oracle      OracleConfig
}

// RedisConfig configures the optional oracle verdict cache. An empty URL
// disables Redis entirely.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	VerdictTTL   time.Duration
}

// OracleConfig configures the external semantic-equivalence service. An empty
// URL disables the oracle; comparisons then rely on local metrics only.
type OracleConfig struct {
	URL     string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        envOr("DOCAUDIT_ADDR", ":8080"),
		PostgresDSN: os.Getenv("DOCAUDIT_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("DOCAUDIT_REDIS_URL"),
			PoolSize:     envInt("DOCAUDIT_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("DOCAUDIT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("DOCAUDIT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("DOCAUDIT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("DOCAUDIT_REDIS_WRITE_TIMEOUT", 3*time.Second),
			VerdictTTL:   envDuration("DOCAUDIT_ORACLE_CACHE_TTL", 24*time.Hour),
		},
		Oracle: OracleConfig{
			URL:     os.Getenv("DOCAUDIT_ORACLE_URL"),
			Timeout: envDuration("DOCAUDIT_ORACLE_TIMEOUT", 2*time.Second),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
