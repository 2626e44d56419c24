// Package contents serves the /api/contents resource.
package contents

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/models"
	storecontents "github.com/5w1tchy/portfolio-api/internal/store/contents"
)

// Store is the persistence the handler needs; *storecontents.Store satisfies it.
type Store interface {
	List(ctx context.Context, f models.ContentFilter) ([]models.Content, error)
	Get(ctx context.Context, id int64) (models.Content, error)
	Create(ctx context.Context, in models.ContentInput) (models.Content, error)
	Update(ctx context.Context, id int64, in models.ContentInput) (models.Content, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Handler serves list, read and admin write routes for contents.
type Handler struct {
	Store Store
	// OnChange runs after every successful mutation.
	OnChange func()
}

// New returns a Handler over s. onChange may be nil.
func New(s Store, onChange func()) *Handler {
	return &Handler{Store: s, OnChange: onChange}
}

func (h *Handler) changed() {
	if h.OnChange != nil {
		h.OnChange()
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ContentFilter{
		Slug:     strings.TrimSpace(q.Get("slug")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	list, err := h.Store.List(r.Context(), f)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IntID(r, "id")
	if !ok {
		apperr.Write(w, r, apperr.NotFound("Content not found"))
		return
	}
	c, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, storecontents.ErrNotFound) {
		apperr.Write(w, r, apperr.NotFound("Content not found"))
		return
	}
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	c, err := h.Store.Create(r.Context(), in)
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	h.changed()
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IntID(r, "id")
	if !ok {
		apperr.Write(w, r, apperr.NotFound("Content not found"))
		return
	}
	in, err := decodeInput(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	c, err := h.Store.Update(r.Context(), id, in)
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	h.changed()
	httpx.WriteJSON(w, http.StatusOK, c)
}

// Delete answers 200 whether or not the row existed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := httpx.IntID(r, "id"); ok {
		deleted, err := h.Store.Delete(r.Context(), id)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}
		if deleted {
			h.changed()
		}
	}
	httpx.Message(w, http.StatusOK, "Content deleted successfully")
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, storecontents.ErrSlugTaken):
		return apperr.Conflict("Slug must be unique")
	case errors.Is(err, storecontents.ErrNotFound):
		return apperr.NotFound("Content not found")
	}
	return err
}
