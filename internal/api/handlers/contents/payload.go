package contents

import (
	"net/http"
	"strings"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/validate"
)

type payload struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Body          string     `json:"body"`
	DocLink       *string    `json:"docLink"`
	Category      string     `json:"category"`
	ImageURL      *string    `json:"imageUrl"`
	PublishedDate *string    `json:"publishedDate"`
	Featured      *bool      `json:"featured"`
	Slug          string     `json:"slug"`
}

var now = time.Now

// decodeInput validates a create/update body. Omitted or blank publishedDate
// means now and omitted featured means false, on update as well as create.
// Slug and category are stored as sent, trimmed.
func decodeInput(r *http.Request) (models.ContentInput, error) {
	var p payload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		return models.ContentInput{}, err
	}

	in := models.ContentInput{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Body:        p.Body,
		DocLink:     optional(p.DocLink),
		Category:    strings.TrimSpace(p.Category),
		ImageURL:    optional(p.ImageURL),
		Slug:        strings.TrimSpace(p.Slug),
	}
	if err := validate.Required(in.Title, in.Description, in.Body, in.Category, in.Slug); err != nil {
		return models.ContentInput{}, apperr.Validation("Required fields missing")
	}

	in.PublishedDate = now().UTC()
	if p.PublishedDate != nil && strings.TrimSpace(*p.PublishedDate) != "" {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*p.PublishedDate))
		if err != nil {
			return models.ContentInput{}, apperr.Validation("publishedDate must be an RFC 3339 timestamp")
		}
		in.PublishedDate = t.UTC()
	}
	if p.Featured != nil {
		in.Featured = *p.Featured
	}
	return in, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
