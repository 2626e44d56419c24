// Package books serves the /api/books catalog resource.
package books

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/validate"
	storebooks "github.com/5w1tchy/portfolio-api/internal/store/books"
)

// Store is the persistence the handler needs; *storebooks.Store satisfies it.
type Store interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id string) (models.Book, error)
	Create(ctx context.Context, in models.BookInput) (models.Book, error)
	Update(ctx context.Context, id string, in models.BookInput) (models.Book, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler serves the books catalog routes.
type Handler struct {
	Store    Store
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

type payload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
	BuyLink     string `json:"buyLink"`
}

func decodeInput(r *http.Request) (models.BookInput, error) {
	var p payload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		return models.BookInput{}, err
	}
	in := models.BookInput{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		ImageURL:    strings.TrimSpace(p.ImageURL),
		BuyLink:     strings.TrimSpace(p.BuyLink),
	}
	if err := validate.Required(in.Title, in.Description, in.BuyLink); err != nil {
		return models.BookInput{}, apperr.Validation("Required fields missing")
	}
	return in, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	b, err := h.Store.Create(r.Context(), in)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	h.changed()
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	b, err := h.Store.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	h.changed()
	httpx.WriteJSON(w, http.StatusOK, b)
}

// Delete answers 200 whether or not the row existed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Store.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	if deleted {
		h.changed()
	}
	httpx.Message(w, http.StatusOK, "Book deleted successfully")
}

func mapStoreErr(err error) error {
	if errors.Is(err, storebooks.ErrNotFound) {
		return apperr.NotFound("Book not found")
	}
	return err
}
