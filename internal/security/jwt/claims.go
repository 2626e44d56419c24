package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identify an admin session. Subject is the admin email;
// ID is the jti used for revocation.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func newSessionClaims(email, jti string, now time.Time, ttl time.Duration) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Remaining is the time left before the token expires, never negative.
func (c *SessionClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
