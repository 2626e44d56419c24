package books

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
)

var cols = []string{"id", "title", "description", "image_url", "buy_link", "created_at"}

func TestList_InsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM books ORDER BY created_at ASC, id ASC`)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b1", "First", "d", "", "https://buy/1", now).
			AddRow("b2", "Second", "d", "", "https://buy/2", now.Add(time.Second)))

	list, err := New(db).List(t.Context())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b1" || list[1].ID != "b2" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestList_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books`)).WillReturnRows(sqlmock.NewRows(cols))

	list, err := New(db).List(t.Context())
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v (err=%v)", list, err)
	}
}

func TestCreate_UsesGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	s := New(db)
	s.newID = func() string { return "fixed-id" }

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books (id, title, description, image_url, buy_link)`)).
		WithArgs("fixed-id", "T", "D", "", "https://buy").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("fixed-id", "T", "D", "", "https://buy", time.Now()))

	b, err := s.Create(t.Context(), models.BookInput{Title: "T", Description: "D", BuyLink: "https://buy"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.ID != "fixed-id" || b.ImageURL != "" {
		t.Fatalf("unexpected book: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE books`)).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = New(db).Update(t.Context(), "nope", models.BookInput{Title: "T", Description: "D", BuyLink: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	if _, err := New(db).Get(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_MissingIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM books WHERE id = $1`)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := New(db).Delete(t.Context(), "gone")
	if err != nil || deleted {
		t.Fatalf("want (false, nil), got (%v, %v)", deleted, err)
	}
}
