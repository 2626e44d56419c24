// Package books persists catalog Books rows. Ids are UUID strings minted
// on insert.
package books

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/store/dbx"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("book not found")

const selectCols = `id, title, description, image_url, buy_link, created_at`

type Store struct {
	db    *sql.DB
	newID func() string
}

func New(db *sql.DB) *Store {
	return &Store{db: db, newID: uuid.NewString}
}

func scanBook(row interface{ Scan(...any) error }) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.ImageURL, &b.BuyLink, &b.CreatedAt)
	return b, err
}

// List returns books in insertion order. The result is never nil.
func (s *Store) List(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectCols+` FROM books ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (models.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM books WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}

func (s *Store) Create(ctx context.Context, in models.BookInput) (models.Book, error) {
	return scanBook(s.db.QueryRowContext(ctx, `
		INSERT INTO books (id, title, description, image_url, buy_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+selectCols,
		s.newID(), in.Title, in.Description, in.ImageURL, in.BuyLink,
	))
}

func (s *Store) Update(ctx context.Context, id string, in models.BookInput) (models.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `
		UPDATE books
		SET title = $1, description = $2, image_url = $3, buy_link = $4
		WHERE id = $5
		RETURNING `+selectCols,
		in.Title, in.Description, in.ImageURL, in.BuyLink, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	return b, err
}

// Delete is idempotent; deleted reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id string) (deleted bool, err error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return dbx.Count(ctx, s.db, `SELECT COUNT(*) FROM books`)
}
