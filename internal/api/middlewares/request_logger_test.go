package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/portfolio-api/internal/api/middlewares"
)

func TestRequestLogger_StampsResponseTime(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"WriteHeader": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) },
		"Write":       func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("test response")) },
		"nothing":     func(w http.ResponseWriter, r *http.Request) {},
	}
	for name, h := range cases {
		rec := httptest.NewRecorder()
		mw.RequestLogger(h).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))
		if rec.Header().Get("X-Response-Time") == "" {
			t.Errorf("%s: expected X-Response-Time header", name)
		}
	}
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	mw.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("want 418, got %d", rec.Code)
	}
}
