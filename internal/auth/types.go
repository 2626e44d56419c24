// Package auth verifies admin credentials and manages admin sessions.
package auth

import (
	"context"
	"errors"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrSessionRevoked     = errors.New("session revoked")
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// AdminStore keeps DB details out of the handler.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
	UpdatePasswordHash(ctx context.Context, id int64, phc string) error
}

// Verifier decides whether an email/password pair belongs to an admin.
// Implementations return ErrInvalidCredentials on any mismatch.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (models.Admin, error)
}
