package middlewares

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit allows max attempts per client IP per window (fixed window,
// Redis INCR). It fails open when Redis is missing or erroring.
func LoginRateLimit(rdb *redis.Client, max int, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if ip == "" || rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := "rl:login:" + ip

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				slog.Warn("[login-limit] redis error, allowing", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}
			if n > int64(max) {
				retry := window
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = ttl
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second).Seconds())))
				slog.Warn("[login-limit] blocked", "ip", ip, "attempts", n)
				httpx.Message(w, http.StatusTooManyRequests, "Too many login attempts")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
