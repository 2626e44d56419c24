// Package redisconnect builds the optional Redis client.
package redisconnect

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Connect returns (nil, nil) when no Redis is configured; callers treat a
// nil client as "feature disabled".
func Connect(ctx context.Context, c config.Config) (*redis.Client, error) {
	var rdb *redis.Client
	switch {
	case c.RedisURL != "":
		opt, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = time.Second
		opt.WriteTimeout = time.Second
		rdb = redis.NewClient(opt)
	case c.RedisAddr != "":
		opts := &redis.Options{
			Addr:         c.RedisAddr,
			Username:     c.RedisUser,
			Password:     c.RedisPassword,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		}
		if c.RedisPassword != "" {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rdb = redis.NewClient(opts)
	default:
		return nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
