package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestEnforce(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	enforce(rec, httptest.NewRequest("GET", "/", nil), next, "token-bucket", "k", verdict{allowed: true, limit: 40, remaining: 39})
	if !called || rec.Header().Get("X-RateLimit-Remaining") != "39" || rec.Header().Get("Retry-After") != "" {
		t.Fatalf("allowed: called=%v headers=%v", called, rec.Header())
	}

	called = false
	rec = httptest.NewRecorder()
	enforce(rec, httptest.NewRequest("GET", "/", nil), next, "sliding-window", "k", verdict{limit: 5, remaining: -2, retryAfter: 1500 * time.Millisecond})
	if called {
		t.Fatal("blocked request reached handler")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("code = %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("Retry-After = %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("remaining clamps at 0, got %q", got)
	}
}
