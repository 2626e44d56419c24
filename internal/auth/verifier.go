package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/security/password"
)

// PasswordVerifier checks credentials against argon2id hashes in the store.
type PasswordVerifier struct {
	Store  AdminStore
	Hasher *password.Hasher

	dummy string
}

func NewPasswordVerifier(store AdminStore, hasher *password.Hasher) *PasswordVerifier {
	v := &PasswordVerifier{Store: store, Hasher: hasher}
	// Unknown emails still pay for one hash comparison.
	if phc, err := hasher.Hash("not-a-real-password"); err == nil {
		v.dummy = phc
	}
	return v
}

func (v *PasswordVerifier) Verify(ctx context.Context, email, plain string) (models.Admin, error) {
	a, err := v.Store.FindByEmail(ctx, email)
	if errors.Is(err, ErrAdminNotFound) {
		if v.dummy != "" {
			_, _, _ = v.Hasher.Verify(plain, v.dummy)
		}
		return models.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, err
	}

	ok, needsRehash, err := v.Hasher.Verify(plain, a.PasswordHash)
	if err != nil || !ok {
		return models.Admin{}, ErrInvalidCredentials
	}
	if needsRehash {
		if phc, err := v.Hasher.Hash(plain); err == nil {
			if err := v.Store.UpdatePasswordHash(ctx, a.ID, phc); err != nil {
				slog.Warn("[auth] rehash failed", "admin_id", a.ID, "error", err)
			}
		}
	}
	return a, nil
}
