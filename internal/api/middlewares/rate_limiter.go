package middlewares

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type KeyFunc func(r *http.Request) string

// PerIPKey buckets callers by client IP under prefix.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

// clientIP trusts the first X-Forwarded-For hop; deploy behind a proxy
// that overwrites it.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// verdict is what a limiter decided for one request.
type verdict struct {
	allowed    bool
	limit      int
	remaining  int
	retryAfter time.Duration
}

// enforce writes the rate-limit headers and either calls next or answers 429.
func enforce(w http.ResponseWriter, r *http.Request, next http.Handler, policy, key string, v verdict) {
	h := w.Header()
	h.Set("X-RateLimit-Policy", policy)
	h.Set("X-RateLimit-Limit", strconv.Itoa(v.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, v.remaining)))
	if v.allowed {
		next.ServeHTTP(w, r)
		return
	}
	secs := max(int64(1), int64(math.Ceil(v.retryAfter.Seconds())))
	h.Set("Retry-After", strconv.FormatInt(secs, 10))
	slog.Warn("[rate-limit] blocked", "policy", policy, "key", key, "retry_after_s", secs)
	apperr.WriteStatus(w, http.StatusTooManyRequests, "Too many requests")
}

// tokenBucketLua refills KEYS[1] at ARGV[1] tokens/s up to ARGV[2] and
// takes one token if it can. Returns {allowed, tokens_left, retry_ms}.
const tokenBucketLua = `
local rate, cap = tonumber(ARGV[1]), tonumber(ARGV[2])
local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local st = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens, ts = tonumber(st[1]) or cap, tonumber(st[2]) or now
tokens = math.min(cap, tokens + math.max(0, now - ts) * rate / 1000)

local ok, retry = 0, 0
if tokens >= 1 then
  tokens, ok = tokens - 1, 1
else
  retry = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(cap / rate * 1000))
return {ok, math.floor(tokens), retry}
`

var tokenBucketScript = redis.NewScript(tokenBucketLua)

// RedisTokenBucket is the global per-client limiter: rate tokens per second
// with room for burst.
type RedisTokenBucket struct {
	rdb   *redis.Client
	keyFn KeyFunc
	rate  float64
	burst int
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int, keyFn KeyFunc) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, keyFn: keyFn, rate: ratePerSecond, burst: burst}
}

func (tb *RedisTokenBucket) take(r *http.Request, key string) (verdict, error) {
	res, err := tokenBucketScript.Run(r.Context(), tb.rdb, []string{key},
		strconv.FormatFloat(tb.rate, 'f', -1, 64), tb.burst).Int64Slice()
	if err != nil {
		return verdict{}, err
	}
	if len(res) != 3 {
		return verdict{}, fmt.Errorf("token bucket: unexpected reply %v", res)
	}
	return verdict{
		allowed:    res[0] == 1,
		limit:      tb.burst,
		remaining:  int(res[1]),
		retryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tb.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := tb.keyFn(r)
		v, err := tb.take(r, key)
		if err != nil {
			slog.Warn("[rate-limit] token bucket unavailable, allowing", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		enforce(w, r, next, "token-bucket", key, v)
	})
}

// RedisSlidingWindow allows limit requests in any trailing window. Each
// request is a ZSET member scored by its arrival time in ms.
type RedisSlidingWindow struct {
	rdb    *redis.Client
	keyFn  KeyFunc
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, keyFn: keyFn, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) record(r *http.Request, key string) (verdict, error) {
	ctx := r.Context()
	now := time.Now()
	cutoff := now.Add(-sw.window).UnixMilli()

	pipe := sw.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.PExpire(ctx, key, sw.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return verdict{}, err
	}

	count := int(card.Val())
	v := verdict{allowed: count <= sw.limit, limit: sw.limit, remaining: sw.limit - count}
	if !v.allowed {
		v.retryAfter = time.Second
		if z := oldest.Val(); len(z) == 1 {
			freed := time.UnixMilli(int64(z[0].Score)).Add(sw.window)
			v.retryAfter = max(time.Second, freed.Sub(now))
		}
	}
	return v, nil
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sw.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := sw.keyFn(r)
		v, err := sw.record(r, key)
		if err != nil {
			slog.Warn("[rate-limit] sliding window unavailable, allowing", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		enforce(w, r, next, "sliding-window", key, v)
	})
}
