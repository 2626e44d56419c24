package catalog

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("January 2, 2006") },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

var pageTemplates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

type Pages struct {
	Svc *Service
}

func NewPages(svc *Service) *Pages { return &Pages{Svc: svc} }

type landingData struct {
	Featured []models.Content
	Books    []models.Book
}

type indexData struct {
	Groups []Group
	Books  []models.Book
}

// Landing serves GET /{$}.
func (p *Pages) Landing(w http.ResponseWriter, r *http.Request) {
	contents, err := p.Svc.Contents(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	books, err := p.Svc.Books(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "landing.html", landingData{
		Featured: Featured(contents),
		Books:    Preview(books, PreviewSize),
	})
}

// ContentIndex serves GET /content.
func (p *Pages) ContentIndex(w http.ResponseWriter, r *http.Request) {
	contents, err := p.Svc.Contents(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	books, err := p.Svc.Books(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "content_index.html", indexData{
		Groups: GroupByCategory(contents),
		Books:  Preview(books, PreviewSize),
	})
}

// ContentShow serves GET /content/{slug}.
func (p *Pages) ContentShow(w http.ResponseWriter, r *http.Request) {
	c, ok, err := p.Svc.ContentBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if !ok {
		p.render(w, r, http.StatusNotFound, "not_found.html", nil)
		return
	}
	p.render(w, r, http.StatusOK, "content_show.html", c)
}

// Books serves GET /books.
func (p *Pages) Books(w http.ResponseWriter, r *http.Request) {
	books, err := p.Svc.Books(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "books.html", books)
}

func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("[catalog] load failed", "path", r.URL.Path, "error", err)
	p.render(w, r, http.StatusInternalServerError, "error.html", map[string]string{"Retry": r.URL.RequestURI()})
}

// render executes into a buffer so a template error never leaves a half
// written page.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("[catalog] render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
