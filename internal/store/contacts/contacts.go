// Package contacts persists messages from the public contact form.
package contacts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

var ErrNotFound = errors.New("contact not found")

const selectCols = `id, name, email, subject, message, seen, created_at`

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func scanContact(row interface{ Scan(...any) error }) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Seen, &c.CreatedAt)
	return c, err
}

// Create stores a new unseen message.
func (s *Store) Create(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	return scanContact(s.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING `+selectCols,
		in.Name, in.Email, in.Subject, in.Message,
	))
}

// List returns messages newest first. The result is never nil.
func (s *Store) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectCols+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (models.Contact, error) {
	c, err := scanContact(s.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM contacts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, ErrNotFound
	}
	return c, err
}

func (s *Store) SetSeen(ctx context.Context, id int64, seen bool) (models.Contact, error) {
	c, err := scanContact(s.db.QueryRowContext(ctx,
		`UPDATE contacts SET seen = $1 WHERE id = $2 RETURNING `+selectCols, seen, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, ErrNotFound
	}
	return c, err
}

// Delete is idempotent; deleted reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id int64) (deleted bool, err error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Counts returns the total and unseen message counts in one round trip.
func (s *Store) Counts(ctx context.Context) (total, unread int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT seen) FROM contacts`).Scan(&total, &unread)
	return total, unread, err
}

