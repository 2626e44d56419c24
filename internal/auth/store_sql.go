package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{DB: db} }

func (s *SQLStore) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	const q = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admins
		WHERE lower(email) = lower($1)
		LIMIT 1;
	`
	var a models.Admin
	err := s.DB.QueryRowContext(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrAdminNotFound
	}
	return a, err
}

func (s *SQLStore) UpdatePasswordHash(ctx context.Context, id int64, phc string) error {
	const q = `UPDATE admins SET password_hash = $1, updated_at = now() WHERE id = $2;`
	_, err := s.DB.ExecContext(ctx, q, phc, id)
	return err
}

// Upsert creates the admin or replaces its password hash. Used by seeding.
func (s *SQLStore) Upsert(ctx context.Context, email, phc string) (models.Admin, error) {
	const q = `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT admins_email_key
		DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id, email, password_hash, created_at, updated_at;
	`
	var a models.Admin
	err := s.DB.QueryRowContext(ctx, q, email, phc).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
