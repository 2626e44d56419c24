package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

const PreviewSize = 4

type CategoryMeta struct {
	Title       string
	Description string
}

var knownCategories = map[string]CategoryMeta{
	"blog":  {Title: "Blog Posts", Description: "Thoughts, insights, and updates from our team"},
	"novel": {Title: "Novels", Description: "Explore our collection of published novels"},
	"story": {Title: "Short Stories", Description: "Bite-sized fiction for your reading pleasure"},
}

// MetaFor returns display metadata, falling back to the capitalized name.
func MetaFor(category string) CategoryMeta {
	if m, ok := knownCategories[strings.ToLower(category)]; ok {
		return m
	}
	title := capitalize(category)
	return CategoryMeta{Title: title, Description: "Articles in the " + title + " category"}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

type Group struct {
	Category string
	CategoryMeta
	Items []models.Content
}

// GroupByCategory keeps categories in order of first appearance and items
// in input order.
func GroupByCategory(list []models.Content) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, c := range list {
		i, ok := idx[c.Category]
		if !ok {
			i = len(groups)
			idx[c.Category] = i
			groups = append(groups, Group{Category: c.Category, CategoryMeta: MetaFor(c.Category)})
		}
		groups[i].Items = append(groups[i].Items, c)
	}
	return groups
}

func Featured(list []models.Content) []models.Content {
	out := make([]models.Content, 0)
	for _, c := range list {
		if c.Featured {
			out = append(out, c)
		}
	}
	return out
}

// Preview returns at most n leading books.
func Preview(books []models.Book, n int) []models.Book {
	if len(books) <= n {
		return books
	}
	return books[:n]
}
