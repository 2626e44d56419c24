package jwtutil

import (
	"os"
	"strconv"
	"time"
)

const DefaultAccessTTL = 12 * time.Hour

type Config struct {
	Secret    []byte
	AccessTTL time.Duration
	ClockSkew time.Duration
}

// ConfigFromEnv reads AUTH_JWT_SECRET, AUTH_ACCESS_TTL and AUTH_CLOCK_SKEW_SEC.
func ConfigFromEnv() Config {
	return Config{
		Secret:    []byte(os.Getenv("AUTH_JWT_SECRET")),
		AccessTTL: envDuration("AUTH_ACCESS_TTL", DefaultAccessTTL),
		ClockSkew: time.Duration(envInt("AUTH_CLOCK_SKEW_SEC", 60)) * time.Second,
	}
}

func envInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
