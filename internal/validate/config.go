package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Env validates configuration the server cannot run without.
// Fail-fast on bad config.
func Env(c config.Config) error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AdminAuth && len(os.Getenv("AUTH_JWT_SECRET")) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters (or set ADMIN_AUTH=off)")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if _, err := envDuration("AUTH_ACCESS_TTL", "12h"); err != nil {
		return fmt.Errorf("AUTH_ACCESS_TTL: %w", err)
	}

	if err := envMinUint("ARGON2_MEMORY", 19456); err != nil { // >= 19MiB
		return fmt.Errorf("ARGON2_MEMORY: %w", err)
	}
	if err := envMinUint("ARGON2_ITER", 2); err != nil {
		return fmt.Errorf("ARGON2_ITER: %w", err)
	}
	if err := envMinUint("ARGON2_PAR", 1); err != nil {
		return fmt.Errorf("ARGON2_PAR: %w", err)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings worth logging at startup.
func HardeningWarnings(c config.Config) []string {
	var warns []string

	if !c.AdminAuth {
		warns = append(warns, "ADMIN_AUTH=off: admin routes are open to anyone")
	}
	if d, _ := envDuration("AUTH_ACCESS_TTL", "12h"); d > 24*time.Hour {
		warns = append(warns, fmt.Sprintf("AUTH_ACCESS_TTL=%s is > 24h; consider shorter sessions", d))
	}
	if c.RedisURL == "" && c.RedisAddr == "" {
		warns = append(warns, "no Redis configured: rate limits and logout revocation are disabled")
	}

	if strings.EqualFold(c.AppEnv, "production") {
		if os.Getenv("ARGON2_MEMORY") == "" || os.Getenv("ARGON2_ITER") == "" {
			warns = append(warns, "ARGON2_* not explicitly set; using code defaults. Set strong values in production")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.RedisAddr != "" && (c.RedisUser == "" || c.RedisPassword == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
		for _, o := range c.CORSOrigins {
			if strings.HasPrefix(o, "http://localhost") || strings.HasPrefix(o, "http://127.0.0.1") {
				warns = append(warns, "CORS_ORIGINS still allows "+o)
			}
		}
	}
	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	if rdb == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// --- helpers ---

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envMinUint(key string, min uint64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}
