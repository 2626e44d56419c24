package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the dashboard and catalog origins to call the API with
// bearer tokens. Credentials (cookies) are not allowed.
func Cors(origins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Policy", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "X-Response-Time"},
		MaxAge:         3600,
	})
	slog.Debug("[cors] configured", "origins", origins)
	return c.Handler
}
