package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/5w1tchy/portfolio-api/internal/api/middlewares"
)

func TestLimiters_FailOpenWithoutRedis(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	handlers := map[string]http.Handler{
		"token-bucket":   mw.NewRedisTokenBucket(nil, 1, 1, mw.PerIPKey("tb")).Middleware(ok),
		"sliding-window": mw.NewRedisSlidingWindow(nil, 1, time.Minute, mw.PerIPKey("sw")).Middleware(ok),
		"login":          mw.LoginRateLimit(nil, 1, time.Minute)(ok),
	}
	for name, h := range handlers {
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
			if rec.Code != http.StatusNoContent {
				t.Fatalf("%s: request %d blocked without redis (%d)", name, i, rec.Code)
			}
		}
	}
}

func TestPerIPKey(t *testing.T) {
	key := mw.PerIPKey("x")

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := key(req); got != "x:10.0.0.1" {
		t.Errorf("got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := key(req); got != "x:203.0.113.9" {
		t.Errorf("got %q", got)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) mw.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := mw.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }),
		tag("a"), tag("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "h" {
		t.Fatalf("order = %v", order)
	}
}
