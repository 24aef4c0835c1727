package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	HTTPPort           string
	GRPCPort           string
	LogLevel           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	CatalogDBPath string

	SessionStore string
	RedisAddr    string
	SessionTTL   time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	PaymentTimeout      time.Duration
	PaymentLatency      time.Duration
	ConfirmationBaseURL string
}

// Load reads the configuration from the environment, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		GRPCPort:            getEnv("GRPC_PORT", "50060"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CatalogDBPath:       getEnv("CATALOG_DB_PATH", "catalog.db"),
		SessionStore:        strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:        splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "booking-confirmed"),
		ConfirmationBaseURL: getEnv("CONFIRMATION_BASE_URL", "/booking-confirmation"),
	}

	var err error
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PaymentTimeout, err = getEnvDuration("PAYMENT_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.PaymentLatency, err = getEnvDuration("PAYMENT_LATENCY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxRequestBodySize, err = getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20); err != nil {
		return nil, err
	}

	if cfg.SessionStore != StoreMemory && cfg.SessionStore != StoreRedis {
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want %s or %s", cfg.SessionStore, StoreMemory, StoreRedis)
	}
	if cfg.PaymentTimeout >= cfg.RequestTimeout {
		return nil, fmt.Errorf("PAYMENT_TIMEOUT (%s) must be shorter than REQUEST_TIMEOUT (%s)", cfg.PaymentTimeout, cfg.RequestTimeout)
	}
	return cfg, nil
}

func (c *Config) PublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive integer", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration", key, value)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
