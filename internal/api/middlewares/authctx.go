package middlewares

import (
	"context"

	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
)

func WithSession(ctx context.Context, c *jwtutil.SessionClaims) context.Context {
	return context.WithValue(ctx, ctxKeySession, c)
}

func SessionFrom(ctx context.Context) (*jwtutil.SessionClaims, bool) {
	c, ok := ctx.Value(ctxKeySession).(*jwtutil.SessionClaims)
	return c, ok && c != nil
}
