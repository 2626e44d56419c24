// Package catalog renders the public site from cached collections.
package catalog

import (
	"context"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

const (
	keyContents = "contents"
	keyBooks    = "books"
)

type ContentLister interface {
	List(ctx context.Context, f models.ContentFilter) ([]models.Content, error)
}

type BookLister interface {
	List(ctx context.Context) ([]models.Book, error)
}

// Service reads full collections through a short-TTL in-process cache.
// Writers call the Invalidate methods after each successful mutation.
type Service struct {
	contents ContentLister
	books    BookLister
	cache    *gocache.Cache
}

func NewService(contents ContentLister, books BookLister, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{
		contents: contents,
		books:    books,
		cache:    gocache.New(ttl, 2*ttl),
	}
}

// Contents returns every row, newest first.
func (s *Service) Contents(ctx context.Context) ([]models.Content, error) {
	if v, ok := s.cache.Get(keyContents); ok {
		return v.([]models.Content), nil
	}
	list, err := s.contents.List(ctx, models.ContentFilter{})
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyContents, list)
	return list, nil
}

// Books returns every book in insertion order.
func (s *Service) Books(ctx context.Context) ([]models.Book, error) {
	if v, ok := s.cache.Get(keyBooks); ok {
		return v.([]models.Book), nil
	}
	list, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(keyBooks, list)
	return list, nil
}

// ContentBySlug returns the first row with slug.
func (s *Service) ContentBySlug(ctx context.Context, slug string) (models.Content, bool, error) {
	list, err := s.Contents(ctx)
	if err != nil {
		return models.Content{}, false, err
	}
	for _, c := range list {
		if c.Slug == slug {
			return c, true, nil
		}
	}
	return models.Content{}, false, nil
}

func (s *Service) InvalidateContents() { s.cache.Delete(keyContents) }
func (s *Service) InvalidateBooks()    { s.cache.Delete(keyBooks) }
