// Package router mounts every HTTP route of the portfolio service.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/api/handlers"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/books"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/contacts"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/contents"
	"github.com/5w1tchy/portfolio-api/internal/api/middlewares"
	"github.com/5w1tchy/portfolio-api/internal/auth"
	"github.com/5w1tchy/portfolio-api/internal/catalog"
	"github.com/5w1tchy/portfolio-api/internal/config"
	"github.com/5w1tchy/portfolio-api/internal/storage"
	"github.com/5w1tchy/portfolio-api/internal/validate"
	"github.com/redis/go-redis/v9"
)

type ContentStore interface {
	contents.Store
	Count(ctx context.Context) (int, error)
}

type BookStore interface {
	books.Store
	Count(ctx context.Context) (int, error)
}

type ContactStore interface {
	contacts.Store
	Counts(ctx context.Context) (total, unread int, err error)
}

// Deps is everything the routes need. RDB and Images may be nil.
type Deps struct {
	Config   config.Config
	DB       handlers.Pinger
	RDB      *redis.Client
	Contents ContentStore
	Books    BookStore
	Contacts ContactStore
	Verifier auth.Verifier
	Sessions *auth.Sessions
	Images   storage.ImageStore
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	svc := catalog.NewService(d.Contents, d.Books, d.Config.CatalogCacheTTL)
	contentH := contents.New(d.Contents, svc.InvalidateContents)
	bookH := books.New(d.Books, svc.InvalidateBooks)
	contactH := contacts.New(d.Contacts)

	// Catalog pages
	pages := catalog.NewPages(svc)
	mux.HandleFunc("GET /{$}", pages.Landing)
	mux.HandleFunc("GET /content", pages.ContentIndex)
	mux.HandleFunc("GET /content/{slug}", pages.ContentShow)
	mux.HandleFunc("GET /books", pages.Books)

	// Public record API
	mux.HandleFunc("GET /api/contents", contentH.List)
	mux.HandleFunc("GET /api/contents/{id}", contentH.Get)
	mux.HandleFunc("GET /api/books", bookH.List)
	mux.HandleFunc("GET /api/books/{id}", bookH.Get)

	contactLimit := middlewares.NewRedisSlidingWindow(d.RDB, d.Config.ContactLimit, d.Config.ContactWindow, middlewares.PerIPKey("sw:contact"))
	mux.Handle("POST /api/contact", contactLimit.Middleware(http.HandlerFunc(contactH.Submit)))

	var redisCheck func(context.Context) error
	if d.RDB != nil {
		redisCheck = func(ctx context.Context) error { return validate.PingRedis(ctx, d.RDB, time.Second) }
	}
	mux.Handle("GET /healthz", handlers.Health(d.DB, map[string]func(context.Context) error{"redis": redisCheck}))

	mountAdmin(mux, d, contentH, bookH, contactH)
	return mux
}
