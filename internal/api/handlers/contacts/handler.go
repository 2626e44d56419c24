// Package contacts serves the public contact form and the admin inbox.
package contacts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/validate"
	storecontacts "github.com/5w1tchy/portfolio-api/internal/store/contacts"
)

// Store is the inbox persistence; *storecontacts.Store satisfies it.
type Store interface {
	Create(ctx context.Context, in models.ContactInput) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id int64) (models.Contact, error)
	SetSeen(ctx context.Context, id int64, seen bool) (models.Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Handler serves the contact form and admin inbox routes.
type Handler struct {
	Store Store
}

// New returns a Handler over s.
func New(s Store) *Handler { return &Handler{Store: s} }

// Submit stores a message from the public form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		apperr.Write(w, r, err)
		return
	}
	in := models.ContactInput{
		Name:    strings.TrimSpace(body.Name),
		Email:   strings.TrimSpace(body.Email),
		Subject: strings.TrimSpace(body.Subject),
		Message: strings.TrimSpace(body.Message),
	}
	if err := validate.Required(in.Name, in.Email, in.Subject, in.Message); err != nil {
		apperr.Write(w, r, apperr.Validation("All fields are required."))
		return
	}

	c, err := h.Store.Create(r.Context(), in)
	if err != nil {
		apperr.Write(w, r, apperr.Internal("Failed to submit the form.", err))
		return
	}
	slog.Info("[contacts] message received", "contact_id", c.ID)
	httpx.Message(w, http.StatusOK, "Form submitted successfully!")
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
	id, ok := httpx.IntID(r, "id")
	if !ok {
		apperr.Write(w, r, apperr.NotFound("Contact not found"))
		return
	}
	c, err := h.Store.Get(r.Context(), id)
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// MarkSeen handles PATCH with a required boolean "seen".
func (h *Handler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IntID(r, "id")
	if !ok {
		apperr.Write(w, r, apperr.NotFound("Contact not found"))
		return
	}
	var body struct {
		Seen *bool `json:"seen"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil || body.Seen == nil {
		apperr.Write(w, r, apperr.Validation("Seen status is required"))
		return
	}
	c, err := h.Store.SetSeen(r.Context(), id, *body.Seen)
	if err != nil {
		apperr.Write(w, r, mapStoreErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// Delete answers 200 whether or not the row existed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, ok := httpx.IntID(r, "id"); ok {
		if _, err := h.Store.Delete(r.Context(), id); err != nil {
			apperr.Write(w, r, err)
			return
		}
	}
	httpx.Message(w, http.StatusOK, "Contact deleted successfully")
}

func mapStoreErr(err error) error {
	if errors.Is(err, storecontacts.ErrNotFound) {
		return apperr.NotFound("Contact not found")
	}
	return err
}
