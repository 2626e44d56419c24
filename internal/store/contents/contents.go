// Package contents persists Content rows.
package contents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/store/dbx"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrSlugTaken = errors.New("slug already exists")
)

const slugConstraint = "contents_slug_key"

const selectCols = `id, title, description, body, doc_link, category, image_url, published_date, featured, slug`

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func scanContent(row interface{ Scan(...any) error }) (models.Content, error) {
	var (
		c       models.Content
		docLink sql.NullString
		image   sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Body, &docLink, &c.Category, &image, &c.PublishedDate, &c.Featured, &c.Slug); err != nil {
		return models.Content{}, err
	}
	if docLink.Valid {
		c.DocLink = &docLink.String
	}
	if image.Valid {
		c.ImageURL = &image.String
	}
	return c, nil
}

func buildWhere(f models.ContentFilter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if f.Slug != "" {
		args = append(args, f.Slug)
		clauses = append(clauses, fmt.Sprintf("slug = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// List returns rows newest first. The result is never nil.
func (s *Store) List(ctx context.Context, f models.ContentFilter) ([]models.Content, error) {
	where, args := buildWhere(f)
	q := `SELECT ` + selectCols + ` FROM contents ` + where + ` ORDER BY published_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (models.Content, error) {
	c, err := scanContent(s.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM contents WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Content{}, ErrNotFound
	}
	return c, err
}

// slugExists checks for another row holding slug. excludeID <= 0 checks all rows.
func slugExists(ctx context.Context, q dbx.DBTX, slug string, excludeID int64) (bool, error) {
	var exists bool
	var err error
	if excludeID > 0 {
		err = q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM contents WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	} else {
		err = q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM contents WHERE slug = $1)`, slug).Scan(&exists)
	}
	return exists, err
}

// Create inserts a row. The slug pre-check gives the common case a clean
// error; the unique constraint covers concurrent writers.
func (s *Store) Create(ctx context.Context, in models.ContentInput) (models.Content, error) {
	taken, err := slugExists(ctx, s.db, in.Slug, 0)
	if err != nil {
		return models.Content{}, err
	}
	if taken {
		return models.Content{}, ErrSlugTaken
	}

	c, err := scanContent(s.db.QueryRowContext(ctx, `
		INSERT INTO contents (title, description, body, doc_link, category, image_url, published_date, featured, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+selectCols,
		in.Title, in.Description, in.Body, in.DocLink, in.Category, in.ImageURL, in.PublishedDate, in.Featured, in.Slug,
	))
	if dbx.IsUniqueViolation(err, slugConstraint) {
		return models.Content{}, ErrSlugTaken
	}
	return c, err
}

func (s *Store) Update(ctx context.Context, id int64, in models.ContentInput) (models.Content, error) {
	var out models.Content
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		taken, err := slugExists(ctx, tx, in.Slug, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
		out, err = scanContent(tx.QueryRowContext(ctx, `
			UPDATE contents
			SET title = $1, description = $2, body = $3, doc_link = $4, category = $5,
			    image_url = $6, published_date = $7, featured = $8, slug = $9
			WHERE id = $10
			RETURNING `+selectCols,
			in.Title, in.Description, in.Body, in.DocLink, in.Category, in.ImageURL, in.PublishedDate, in.Featured, in.Slug, id,
		))
		return err
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Content{}, ErrNotFound
	case dbx.IsUniqueViolation(err, slugConstraint):
		return models.Content{}, ErrSlugTaken
	}
	return out, err
}

// Delete is idempotent; deleted reports whether a row was actually removed.
func (s *Store) Delete(ctx context.Context, id int64) (deleted bool, err error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return dbx.Count(ctx, s.db, `SELECT COUNT(*) FROM contents`)
}
