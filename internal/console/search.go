package console

import (
	"strings"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

// PageSize is how many rows one dashboard page shows.
const PageSize = 10

// Page is one slice of a collection. Page is 1-based and always within
// [1, max(1, Pages)].
type Page[T any] struct {
	Items []T
	Page  int
	Pages int
	Total int
}

// Paginate clamps page into range. An empty collection yields page 1 of 0
// with no items.
func Paginate[T any](list []T, page int) Page[T] {
	total := len(list)
	pages := (total + PageSize - 1) / PageSize
	page = min(max(page, 1), max(pages, 1))

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)
	items := make([]T, end-start)
	copy(items, list[start:end])
	return Page[T]{Items: items, Page: page, Pages: pages, Total: total}
}

func filter[T any](list []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(list))
	for _, x := range list {
		if term == "" || anyContains(fields(x), term) {
			out = append(out, x)
		}
	}
	return out
}

func anyContains(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func SearchContents(list []models.Content, term string) []models.Content {
	return filter(list, term, func(c models.Content) []string {
		return []string{c.Title, c.Description, c.Category}
	})
}

func SearchBooks(list []models.Book, term string) []models.Book {
	return filter(list, term, func(b models.Book) []string {
		return []string{b.Title, b.Description}
	})
}

func SearchContacts(list []models.Contact, term string) []models.Contact {
	return filter(list, term, func(c models.Contact) []string {
		return []string{c.Name, c.Email, c.Subject, c.Message}
	})
}
