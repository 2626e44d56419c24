package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/portfolio-api/internal/api/middlewares"
	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
)

type stubAuthn struct{}

func (stubAuthn) Authenticate(_ context.Context, token string) (*jwtutil.SessionClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	c := &jwtutil.SessionClaims{}
	c.Subject = "admin@example.com"
	return c, nil
}

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := mw.SessionFrom(r.Context()); ok {
			w.Write([]byte(c.Subject))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestRequireAdmin_Enabled(t *testing.T) {
	h := mw.RequireAdmin(stubAuthn{}, true)(sessionEcho())

	cases := []struct {
		header string
		code   int
		body   string
	}{
		{"", http.StatusUnauthorized, ""},
		{"Bearer bad", http.StatusUnauthorized, ""},
		{"Token good", http.StatusUnauthorized, ""},
		{"Bearer good", http.StatusOK, "admin@example.com"},
		{"bearer good", http.StatusOK, "admin@example.com"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/api/admin/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.code {
			t.Errorf("%q: want %d, got %d", tc.header, tc.code, rec.Code)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Errorf("%q: want body %q, got %q", tc.header, tc.body, rec.Body.String())
		}
	}
}

func TestRequireAdmin_DisabledPassesThrough(t *testing.T) {
	h := mw.RequireAdmin(stubAuthn{}, false)(sessionEcho())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Fatalf("want anonymous pass-through, got %d %q", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != "admin@example.com" {
		t.Fatalf("valid token should still attach a session, got %q", rec.Body.String())
	}
}
