package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/middlewares"
	"github.com/5w1tchy/portfolio-api/internal/models"
	jwtutil "github.com/5w1tchy/portfolio-api/internal/security/jwt"
)

type fakeVerifier struct {
	admin models.Admin
	err   error
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, _, _ string) (models.Admin, error) {
	f.calls++
	return f.admin, f.err
}

func newTestHandler(v Verifier) *Handler {
	tokens := jwtutil.NewManager(jwtutil.Config{Secret: []byte("0123456789abcdef0123456789abcdef"), AccessTTL: time.Hour})
	return New(v, NewSessions(tokens, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("bad json %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestLogin_MissingFields(t *testing.T) {
	v := &fakeVerifier{}
	h := newTestHandler(v)

	for _, body := range []string{`{}`, `{"email":"a@b.c"}`, `{"password":"x"}`, `not json`} {
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body)))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: want 403, got %d", body, rec.Code)
		}
		if got := decodeBody(t, rec)["message"]; got != "All fields are required" {
			t.Fatalf("%s: unexpected message %v", body, got)
		}
	}
	if v.calls != 0 {
		t.Fatalf("verifier must not be called for incomplete payloads")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newTestHandler(&fakeVerifier{err: ErrInvalidCredentials})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"a@b.c","password":"nope"}`)))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Invalid Credentials" {
		t.Fatalf("unexpected message %v", got)
	}
}

func TestLogin_StoreFailureIs500(t *testing.T) {
	h := newTestHandler(&fakeVerifier{err: errors.New("db down")})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"a@b.c","password":"pw"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
}

func TestLogin_SuccessIssuesToken(t *testing.T) {
	h := newTestHandler(&fakeVerifier{admin: models.Admin{ID: 1, Email: "a@b.c"}})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"a@b.c","password":"pw"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Logged In successfully" || resp.AccessToken == "" || resp.ExpiresAt <= time.Now().Unix() {
		t.Fatalf("unexpected response: %+v", resp)
	}
	claims, err := h.Sessions.Authenticate(context.Background(), resp.AccessToken)
	if err != nil || claims.Subject != "a@b.c" {
		t.Fatalf("issued token must authenticate: %v %+v", err, claims)
	}
}

func TestMe(t *testing.T) {
	h := newTestHandler(&fakeVerifier{})
	_, claims, err := h.Sessions.Issue("a@b.c")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req = req.WithContext(middlewares.WithSession(req.Context(), &claims))
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	if rec.Code != http.StatusOK || decodeBody(t, rec)["email"] != "a@b.c" {
		t.Fatalf("unexpected: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without session, got %d", rec.Code)
	}
}
