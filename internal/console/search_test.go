package console

import (
	"testing"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

func TestPaginate(t *testing.T) {
	list := make([]int, 23)
	for i := range list {
		list[i] = i
	}

	cases := []struct {
		page, wantPage, wantLen, wantFirst int
	}{
		{1, 1, 10, 0},
		{2, 2, 10, 10},
		{3, 3, 3, 20},
		{0, 1, 10, 0},
		{-4, 1, 10, 0},
		{9, 3, 3, 20},
	}
	for _, c := range cases {
		p := Paginate(list, c.page)
		if p.Pages != 3 || p.Total != 23 {
			t.Fatalf("page %d: pages=%d total=%d", c.page, p.Pages, p.Total)
		}
		if p.Page != c.wantPage || len(p.Items) != c.wantLen || p.Items[0] != c.wantFirst {
			t.Errorf("page %d: got page=%d len=%d first=%d", c.page, p.Page, len(p.Items), p.Items[0])
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]models.Book(nil), 1)
	if p.Page != 1 || p.Pages != 0 || p.Items == nil || len(p.Items) != 0 {
		t.Fatalf("empty: %+v", p)
	}
	if p := Paginate([]int{}, 5); p.Page != 1 {
		t.Fatalf("empty clamps to page 1, got %d", p.Page)
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	p := Paginate(make([]int, 20), 3)
	if p.Pages != 2 || p.Page != 2 || len(p.Items) != 10 {
		t.Fatalf("got %+v", p)
	}
}

func TestSearchContents(t *testing.T) {
	list := []models.Content{
		{ID: 1, Title: "Winter Tale", Description: "snow", Category: "story"},
		{ID: 2, Title: "Notes", Description: "On writing", Category: "blog"},
		{ID: 3, Title: "Saga", Description: "long", Category: "novel", Body: "winter"},
	}
	if got := SearchContents(list, "WINTER"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("body must not be searched: %+v", got)
	}
	if got := SearchContents(list, "blog"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("category: %+v", got)
	}
	if got := SearchContents(list, ""); len(got) != 3 {
		t.Fatalf("empty term matches all, got %d", len(got))
	}
}

func TestSearchBooksAndContacts(t *testing.T) {
	books := []models.Book{{ID: "a", Title: "Dune", Description: "desert", BuyLink: "https://x/dune"}}
	if got := SearchBooks(books, "x/"); len(got) != 0 {
		t.Fatalf("buy link is not searched: %+v", got)
	}
	if got := SearchBooks(books, "DESERT"); len(got) != 1 {
		t.Fatalf("description: %+v", got)
	}

	contacts := []models.Contact{
		{ID: 1, Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "hello"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Subject: "Rights", Message: "film deal"},
	}
	for term, want := range map[string]int64{"ADA@": 1, "rights": 2, "FILM": 2, "hello": 1} {
		got := SearchContacts(contacts, term)
		if len(got) != 1 || got[0].ID != want {
			t.Errorf("%q: %+v", term, got)
		}
	}
}
