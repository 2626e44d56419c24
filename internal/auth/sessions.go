package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "sess:revoked:"

// Sessions issues admin tokens and tracks revoked ones in Redis. With a nil
// Redis client revocation is unavailable and tokens live until expiry.
type Sessions struct {
	Tokens *jwtutil.Manager
	RDB    *redis.Client
}

func NewSessions(tokens *jwtutil.Manager, rdb *redis.Client) *Sessions {
	return &Sessions{Tokens: tokens, RDB: rdb}
}

func (s *Sessions) Issue(email string) (string, jwtutil.SessionClaims, error) {
	return s.Tokens.Sign(email)
}

// Authenticate parses the token and rejects revoked sessions.
func (s *Sessions) Authenticate(ctx context.Context, token string) (*jwtutil.SessionClaims, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.RDB == nil {
		return claims, nil
	}
	n, err := s.RDB.Exists(ctx, revokedPrefix+claims.ID).Result()
	if err != nil {
		// fail open: a Redis outage should not lock admins out
		slog.Warn("[auth] revocation check failed", "error", err)
		return claims, nil
	}
	if n > 0 {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke marks the session's jti revoked until the token would expire anyway.
func (s *Sessions) Revoke(ctx context.Context, claims *jwtutil.SessionClaims) error {
	if s.RDB == nil {
		return errors.New("session revocation requires redis")
	}
	ttl := claims.Remaining(time.Now())
	if ttl <= 0 {
		return nil
	}
	return s.RDB.Set(ctx, revokedPrefix+claims.ID, 1, ttl).Err()
}
