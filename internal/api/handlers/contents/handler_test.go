package contents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/models"
	storecontents "github.com/5w1tchy/portfolio-api/internal/store/contents"
)

type memStore struct {
	mu     sync.Mutex
	rows   map[int64]models.Content
	nextID int64
	writes int
	err    error
}

func newMemStore() *memStore { return &memStore{rows: map[int64]models.Content{}, nextID: 1} }

func (m *memStore) slugTaken(slug string, exclude int64) bool {
	for id, c := range m.rows {
		if c.Slug == slug && id != exclude {
			return true
		}
	}
	return false
}

func (m *memStore) List(_ context.Context, f models.ContentFilter) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Content{}
	for _, c := range m.rows {
		if (f.Slug == "" || c.Slug == f.Slug) && (f.Category == "" || c.Category == f.Category) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, id int64) (models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return models.Content{}, storecontents.ErrNotFound
	}
	return c, nil
}

func fromInput(id int64, in models.ContentInput) models.Content {
	return models.Content{
		ID: id, Title: in.Title, Description: in.Description, Body: in.Body, DocLink: in.DocLink,
		Category: in.Category, ImageURL: in.ImageURL, PublishedDate: in.PublishedDate,
		Featured: in.Featured, Slug: in.Slug,
	}
}

func (m *memStore) Create(_ context.Context, in models.ContentInput) (models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(in.Slug, 0) {
		return models.Content{}, storecontents.ErrSlugTaken
	}
	m.writes++
	c := fromInput(m.nextID, in)
	m.rows[c.ID] = c
	m.nextID++
	return c, nil
}

func (m *memStore) Update(_ context.Context, id int64, in models.ContentInput) (models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(in.Slug, id) {
		return models.Content{}, storecontents.ErrSlugTaken
	}
	if _, ok := m.rows[id]; !ok {
		return models.Content{}, storecontents.ErrNotFound
	}
	m.writes++
	c := fromInput(id, in)
	m.rows[id] = c
	return c, nil
}

func (m *memStore) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/contents", h.List)
	mux.HandleFunc("GET /api/contents/{id}", h.Get)
	mux.HandleFunc("POST /api/contents", h.Create)
	mux.HandleFunc("PUT /api/contents/{id}", h.Update)
	mux.HandleFunc("DELETE /api/contents/{id}", h.Delete)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("bad json %q", rec.Body.String())
	}
	return m["error"]
}

const validBody = `{"title":"T","description":"D","body":"B","category":"blog","slug":"hello-world"}`

func TestCreate_DefaultsAndDuplicateSlug(t *testing.T) {
	store := newMemStore()
	changes := 0
	mux := newMux(New(store, func() { changes++ }))

	before := time.Now().Add(-time.Second)
	rec := do(t, mux, "POST", "/api/contents", validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var c models.Content
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if c.ID == 0 || c.Featured || c.ImageURL != nil || c.PublishedDate.Before(before) {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if !strings.Contains(rec.Body.String(), `"imageUrl":null`) {
		t.Fatalf("imageUrl should serialize as null: %s", rec.Body.String())
	}

	rec = do(t, mux, "POST", "/api/contents", validBody)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Slug must be unique" {
		t.Fatalf("want 400 slug conflict, got %d %s", rec.Code, rec.Body.String())
	}
	if store.writes != 1 || changes != 1 {
		t.Fatalf("duplicate must not write: writes=%d changes=%d", store.writes, changes)
	}
}

func TestCreate_Validation(t *testing.T) {
	store := newMemStore()
	mux := newMux(New(store, nil))

	bodies := []string{
		`{"description":"D","body":"B","category":"blog","slug":"s"}`,
		`{"title":"T","body":"B","category":"blog","slug":"s"}`,
		`{"title":"T","description":"D","category":"blog","slug":"s"}`,
		`{"title":"T","description":"D","body":"B","slug":"s"}`,
		`{"title":"T","description":"D","body":"B","category":"blog"}`,
		`{"title":"   ","description":"D","body":"B","category":"blog","slug":"s"}`,
	}
	for _, b := range bodies {
		rec := do(t, mux, "POST", "/api/contents", b)
		if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Required fields missing" {
			t.Errorf("%s: want 400 Required fields missing, got %d %s", b, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, mux, "POST", "/api/contents", `{"title":"T","description":"D","body":"B","category":"blog","slug":"s","publishedDate":"yesterday"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "publishedDate must be an RFC 3339 timestamp" {
		t.Errorf("bad publishedDate: want 400, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, mux, "POST", "/api/contents", `{bad`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: want 400, got %d", rec.Code)
	}
	if store.writes != 0 {
		t.Fatalf("invalid payloads must not write, got %d", store.writes)
	}
}

func TestCreate_KeepsProvidedFields(t *testing.T) {
	mux := newMux(New(newMemStore(), nil))
	rec := do(t, mux, "POST", "/api/contents",
		`{"title":"T","description":"D","body":"B","category":"Novel","slug":"n","featured":true,"publishedDate":"2024-05-01T10:00:00Z","imageUrl":"https://img/a.png","docLink":"  "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
	var c models.Content
	_ = json.Unmarshal(rec.Body.Bytes(), &c)
	if !c.Featured || c.Category != "Novel" || c.ImageURL == nil || c.DocLink != nil {
		t.Fatalf("unexpected: %+v", c)
	}
	if !c.PublishedDate.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("publishedDate = %v", c.PublishedDate)
	}
}

func TestCreate_StoresSlugAndCategoryVerbatim(t *testing.T) {
	store := newMemStore()
	mux := newMux(New(store, nil))
	rec := do(t, mux, "POST", "/api/contents",
		`{"title":"T","description":"D","body":"B","category":" Poetry ","slug":" My_Post ","publishedDate":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d %s", rec.Code, rec.Body.String())
	}
	got := store.rows[1]
	if got.Slug != "My_Post" || got.Category != "Poetry" {
		t.Fatalf("stored slug=%q category=%q", got.Slug, got.Category)
	}
	if time.Since(got.PublishedDate) > time.Minute {
		t.Fatalf("blank publishedDate should mean now, got %v", got.PublishedDate)
	}

	rec = do(t, mux, "GET", "/api/contents/1", "")
	var c models.Content
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if c.Slug != "My_Post" || c.Category != "Poetry" {
		t.Fatalf("read back slug=%q category=%q", c.Slug, c.Category)
	}
}

func TestUpdate(t *testing.T) {
	store := newMemStore()
	mux := newMux(New(store, nil))
	do(t, mux, "POST", "/api/contents", validBody)
	do(t, mux, "POST", "/api/contents", strings.Replace(validBody, "hello-world", "other", 1))

	// Re-saving with its own slug is allowed.
	rec := do(t, mux, "PUT", "/api/contents/1", strings.Replace(validBody, `"T"`, `"T2"`, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("own slug: want 200, got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, mux, "PUT", "/api/contents/2", validBody)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Slug must be unique" {
		t.Fatalf("taken slug: got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, mux, "PUT", "/api/contents/99", strings.Replace(validBody, "hello-world", "fresh", 1))
	if rec.Code != http.StatusNotFound || errorOf(t, rec) != "Content not found" {
		t.Fatalf("missing: got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, mux, "PUT", "/api/contents/abc", validBody)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("malformed id: got %d", rec.Code)
	}
}

func TestGetAndList(t *testing.T) {
	store := newMemStore()
	mux := newMux(New(store, nil))

	rec := do(t, mux, "GET", "/api/contents", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: got %d %q", rec.Code, rec.Body.String())
	}

	do(t, mux, "POST", "/api/contents", validBody)
	rec = do(t, mux, "GET", "/api/contents?slug=hello-world", "")
	var list []models.Content
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Slug != "hello-world" {
		t.Fatalf("slug filter: %s", rec.Body.String())
	}

	for _, p := range []string{"/api/contents/42", "/api/contents/x1", "/api/contents/-3"} {
		rec = do(t, mux, "GET", p, "")
		if rec.Code != http.StatusNotFound || errorOf(t, rec) != "Content not found" {
			t.Errorf("%s: got %d %s", p, rec.Code, rec.Body.String())
		}
	}

	store.err = errors.New("db down")
	rec = do(t, mux, "GET", "/api/contents", "")
	if rec.Code != http.StatusInternalServerError || errorOf(t, rec) != "Internal server error." {
		t.Fatalf("store failure: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestDelete_Idempotent(t *testing.T) {
	store := newMemStore()
	changes := 0
	mux := newMux(New(store, func() { changes++ }))
	do(t, mux, "POST", "/api/contents", validBody)
	changes = 0

	for _, p := range []string{"/api/contents/1", "/api/contents/1", "/api/contents/nope"} {
		rec := do(t, mux, "DELETE", p, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Content deleted successfully") {
			t.Fatalf("%s: got %d %s", p, rec.Code, rec.Body.String())
		}
	}
	if changes != 1 {
		t.Fatalf("only the real delete should invalidate, got %d", changes)
	}
}
