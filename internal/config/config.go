// Package config gathers runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv  string
	Port    string
	TLSCert string
	TLSKey  string

	DatabaseURL string

	RedisURL      string
	RedisAddr     string
	RedisUser     string
	RedisPassword string

	AdminAuth   bool
	CORSOrigins []string
	MaxBodySize int64

	RateLimitRPS     float64
	RateLimitBurst   int
	LoginMaxAttempts int
	LoginWindow      time.Duration
	ContactLimit     int
	ContactWindow    time.Duration

	CatalogCacheTTL time.Duration

	ContactRetentionDays int
	ContactRetentionAt   string
	ContactRetentionTZ   string
}

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173"}

// Load reads the environment. Call godotenv before it if a .env file is used.
func Load() Config {
	c := Config{
		AppEnv:  envStr("APP_ENV", "development"),
		Port:    envStr("PORT", "3000"),
		TLSCert: os.Getenv("TLS_CERT"),
		TLSKey:  os.Getenv("TLS_KEY"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisURL:      firstNonEmpty(os.Getenv("REDIS_URL"), os.Getenv("UPSTASH_REDIS_URL")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AdminAuth:   !strings.EqualFold(strings.TrimSpace(os.Getenv("ADMIN_AUTH")), "off"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		MaxBodySize: envInt64("MAX_BODY_SIZE", 12<<20),

		RateLimitRPS:     envFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   int(envInt64("RATE_LIMIT_BURST", 40)),
		LoginMaxAttempts: int(envInt64("LOGIN_MAX_ATTEMPTS", 10)),
		LoginWindow:      envDur("LOGIN_WINDOW", 5*time.Minute),
		ContactLimit:     int(envInt64("CONTACT_RATE_LIMIT", 5)),
		ContactWindow:    envDur("CONTACT_RATE_WINDOW", time.Hour),

		CatalogCacheTTL: envDur("CATALOG_CACHE_TTL", 30*time.Second),

		ContactRetentionDays: int(envInt64("CONTACT_RETENTION_DAYS", 0)),
		ContactRetentionAt:   envStr("CONTACT_RETENTION_AT", "03:00"),
		ContactRetentionTZ:   envStr("CONTACT_RETENTION_TZ", "UTC"),
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = defaultOrigins
	}
	return c
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) TLSEnabled() bool { return c.TLSCert != "" && c.TLSKey != "" }

func envStr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func envDur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
