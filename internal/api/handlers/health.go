package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports 200 when the database answers and every optional check
// passes, 503 otherwise. Optional checks (e.g. Redis) may be nil.
func Health(db Pinger, optional map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		if err := db.PingContext(ctx); err != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
		for name, check := range optional {
			if check == nil {
				checks[name] = "disabled"
				continue
			}
			if err := check(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				continue
			}
			checks[name] = "ok"
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, map[string]any{"status": status, "checks": checks})
	}
}
