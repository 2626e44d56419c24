package router

import (
	"net/http"

	"github.com/5w1tchy/portfolio-api/internal/api/handlers/admin"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/books"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/contacts"
	"github.com/5w1tchy/portfolio-api/internal/api/handlers/contents"
	"github.com/5w1tchy/portfolio-api/internal/api/middlewares"
	"github.com/5w1tchy/portfolio-api/internal/auth"
)

// mountAdmin wires every route behind the admin gate, plus login.
func mountAdmin(mux *http.ServeMux, d Deps, contentH *contents.Handler, bookH *books.Handler, contactH *contacts.Handler) {
	var authn middlewares.SessionAuthenticator
	if d.Sessions != nil {
		authn = d.Sessions
	}
	gate := middlewares.RequireAdmin(authn, d.Config.AdminAuth)
	guard := func(h http.HandlerFunc) http.Handler { return gate(h) }

	// Content
	mux.Handle("POST /api/contents", guard(contentH.Create))
	mux.Handle("PUT /api/contents/{id}", guard(contentH.Update))
	mux.Handle("DELETE /api/contents/{id}", guard(contentH.Delete))

	// Books
	mux.Handle("POST /api/books", guard(bookH.Create))
	mux.Handle("PUT /api/books/{id}", guard(bookH.Update))
	mux.Handle("DELETE /api/books/{id}", guard(bookH.Delete))

	// Inbox
	mux.Handle("GET /api/contacts", guard(contactH.List))
	mux.Handle("GET /api/contacts/{id}", guard(contactH.Get))
	mux.Handle("PATCH /api/contacts/{id}", guard(contactH.MarkSeen))
	mux.Handle("DELETE /api/contacts/{id}", guard(contactH.Delete))

	// Session
	authH := auth.New(d.Verifier, d.Sessions)
	loginLimit := middlewares.LoginRateLimit(d.RDB, d.Config.LoginMaxAttempts, d.Config.LoginWindow)
	mux.Handle("POST /api/admin/login", loginLimit(http.HandlerFunc(authH.Login)))
	mux.Handle("POST /api/admin/logout", guard(authH.Logout))
	mux.Handle("GET /api/admin/me", guard(authH.Me))

	// Dashboard
	adminH := admin.NewHandler(d.Contents, d.Books, d.Contacts, d.Images)
	mux.Handle("GET /api/admin/stats", guard(adminH.Stats))
	mux.Handle("POST /api/admin/uploads", guard(adminH.Upload))
	mux.Handle("DELETE /api/admin/uploads/{key...}", guard(adminH.DeleteUpload))
}
