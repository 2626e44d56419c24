package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPG_SlugUnique(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "contents_slug_key"})
	ae, ok := FromPG(err)
	if !ok {
		t.Fatal("expected pg error to be mapped")
	}
	if ae.Kind != KindConflict || ae.Message != "Slug must be unique" {
		t.Fatalf("got kind=%v msg=%q", ae.Kind, ae.Message)
	}
	if ae.Kind.Status() != http.StatusBadRequest {
		t.Fatalf("conflict should map to 400, got %d", ae.Kind.Status())
	}
}

func TestFromPG_NotPG(t *testing.T) {
	if _, ok := FromPG(errors.New("boom")); ok {
		t.Fatal("plain errors must not be mapped")
	}
}

func TestWrite_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents", nil)
	Write(rec, req, errors.New("dial tcp: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Internal server error." {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWrite_Kinds(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("Required fields missing"), http.StatusBadRequest},
		{Conflict("Slug must be unique"), http.StatusBadRequest},
		{NotFound("Content not found"), http.StatusNotFound},
		{Forbidden("Invalid Credentials"), http.StatusForbidden},
		{Unauthorized("missing token"), http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", NotFound("Book not found")), http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Write(rec, nil, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%v: want %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}
