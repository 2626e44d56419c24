package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
)

type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwtutil.SessionClaims, error)
}

// RequireAdmin rejects requests without a valid, unrevoked Bearer token.
// When enabled is false it passes everything through, but still attaches a
// session if a valid token happens to be present.
func RequireAdmin(authn SessionAuthenticator, enabled bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := bearer(r.Header.Get("Authorization"))
			if err == nil && authn != nil {
				if claims, aerr := authn.Authenticate(r.Context(), tokenStr); aerr == nil {
					next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims)))
					return
				}
			}
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			apperr.Write(w, r, apperr.Unauthorized("Unauthorized"))
		})
	}
}

func bearer(h string) (string, error) {
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", errors.New("no bearer")
	}
	return strings.TrimSpace(h[len(prefix):]), nil
}
