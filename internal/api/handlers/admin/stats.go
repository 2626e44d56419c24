package admin

import (
	"context"
	"net/http"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/models"
)

// GET /api/admin/stats. Always read from the store so the numbers never
// drift from the tables.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.fetchStats(r.Context())
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) fetchStats(ctx context.Context) (models.Stats, error) {
	var (
		s   models.Stats
		err error
	)
	if s.Contents, err = h.Contents.Count(ctx); err != nil {
		return models.Stats{}, err
	}
	if s.Books, err = h.Books.Count(ctx); err != nil {
		return models.Stats{}, err
	}
	if s.Contacts, s.UnreadMessages, err = h.Contacts.Counts(ctx); err != nil {
		return models.Stats{}, err
	}
	return s, nil
}
