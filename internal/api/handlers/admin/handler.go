// Package admin serves dashboard-only endpoints: stats and image uploads.
package admin

import (
	"context"

	"github.com/5w1tchy/portfolio-api/internal/storage"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type inboxCounter interface {
	Counts(ctx context.Context) (total, unread int, err error)
}

type Handler struct {
	Contents counter
	Books    counter
	Contacts inboxCounter
	// Images is nil when no object store is configured; uploads then 503.
	Images storage.ImageStore
}

func NewHandler(contents, books counter, contacts inboxCounter, images storage.ImageStore) *Handler {
	return &Handler{Contents: contents, Books: books, Contacts: contacts, Images: images}
}
