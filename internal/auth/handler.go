package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/api/middlewares"
)

type Handler struct {
	Verifier Verifier
	Sessions *Sessions
}

func New(v Verifier, s *Sessions) *Handler {
	return &Handler{Verifier: v, Sessions: s}
}

// Login keeps the dashboard's contract: every client-side failure is a 403
// with a {message} body.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusForbidden, "All fields are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		httpx.Message(w, http.StatusForbidden, "All fields are required")
		return
	}

	admin, err := h.Verifier.Verify(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		httpx.Message(w, http.StatusForbidden, "Invalid Credentials")
		return
	}
	if err != nil {
		apperr.Write(w, r, apperr.Internal("Internal server error.", err))
		return
	}

	token, claims, err := h.Sessions.Issue(admin.Email)
	if err != nil {
		apperr.Write(w, r, apperr.Internal("Internal server error.", err))
		return
	}
	slog.Info("[auth] admin logged in", "admin_id", admin.ID)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:     "Logged In successfully",
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Unix(),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.SessionFrom(r.Context())
	if !ok {
		apperr.Write(w, r, apperr.Unauthorized("Unauthorized"))
		return
	}
	if err := h.Sessions.Revoke(r.Context(), claims); err != nil {
		apperr.Write(w, r, apperr.Internal("Internal server error.", err))
		return
	}
	httpx.Message(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.SessionFrom(r.Context())
	if !ok {
		apperr.Write(w, r, apperr.Unauthorized("Unauthorized"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"email": claims.Subject})
}
