package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/storage"
)

// Stats are recomputed from the local collections after every mutation.
type Stats struct {
	Contents       int `json:"contents"`
	Books          int `json:"books"`
	UnreadMessages int `json:"unreadMessages"`
}

// State holds local copies of the three collections. After a successful
// server mutation the copy is patched in place instead of reloaded.
type State struct {
	Contents []models.Content
	Books    []models.Book
	Contacts []models.Contact
}

func (s *State) Stats() Stats {
	unread := 0
	for _, c := range s.Contacts {
		if !c.Seen {
			unread++
		}
	}
	return Stats{Contents: len(s.Contents), Books: len(s.Books), UnreadMessages: unread}
}

// ImageUploader is the part of Client the submit flow needs.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, folder string) (UploadResult, error)
}

// Console ties a Client to its State.
type Console struct {
	Client *Client
	State  State
}

func New(c *Client) *Console { return &Console{Client: c} }

// Refresh loads all three collections. On error the state is unchanged.
func (c *Console) Refresh(ctx context.Context) error {
	contents, err := c.Client.Contents(ctx)
	if err != nil {
		return fmt.Errorf("load contents: %w", err)
	}
	books, err := c.Client.Books(ctx)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	contacts, err := c.Client.Contacts(ctx)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	c.State = State{Contents: contents, Books: books, Contacts: contacts}
	return nil
}

// CreateContent uploads imagePath first when given; a failed upload aborts
// before any record call.
func (c *Console) CreateContent(ctx context.Context, p ContentPayload, imagePath string) (models.Content, error) {
	if imagePath != "" {
		url, err := uploadFile(ctx, c.Client, imagePath, "contents")
		if err != nil {
			return models.Content{}, err
		}
		p.ImageURL = &url
	}
	created, err := c.Client.CreateContent(ctx, p)
	if err != nil {
		return models.Content{}, err
	}
	c.State.Contents = append(c.State.Contents, created)
	return created, nil
}

// UpdateContent uploads imagePath first when given. Once the update lands,
// the image it replaced is removed from the bucket.
func (c *Console) UpdateContent(ctx context.Context, id int64, p ContentPayload, imagePath string) (models.Content, error) {
	var previous string
	for _, x := range c.State.Contents {
		if x.ID == id && x.ImageURL != nil {
			previous = *x.ImageURL
		}
	}
	if imagePath != "" {
		url, err := uploadFile(ctx, c.Client, imagePath, "contents")
		if err != nil {
			return models.Content{}, err
		}
		p.ImageURL = &url
	}
	updated, err := c.Client.UpdateContent(ctx, id, p)
	if err != nil {
		return models.Content{}, err
	}
	c.State.Contents = replace(c.State.Contents, updated, func(x models.Content) bool { return x.ID == id })
	if imagePath != "" {
		c.dropImage(ctx, previous, *p.ImageURL, "contents")
	}
	return updated, nil
}

func (c *Console) DeleteContent(ctx context.Context, id int64) error {
	if err := c.Client.DeleteContent(ctx, id); err != nil {
		return err
	}
	c.State.Contents = remove(c.State.Contents, func(x models.Content) bool { return x.ID == id })
	return nil
}

func (c *Console) CreateBook(ctx context.Context, p BookPayload, imagePath string) (models.Book, error) {
	if imagePath != "" {
		url, err := uploadFile(ctx, c.Client, imagePath, "books")
		if err != nil {
			return models.Book{}, err
		}
		p.ImageURL = url
	}
	created, err := c.Client.CreateBook(ctx, p)
	if err != nil {
		return models.Book{}, err
	}
	c.State.Books = append(c.State.Books, created)
	return created, nil
}

func (c *Console) UpdateBook(ctx context.Context, id string, p BookPayload, imagePath string) (models.Book, error) {
	var previous string
	for _, x := range c.State.Books {
		if x.ID == id {
			previous = x.ImageURL
		}
	}
	if imagePath != "" {
		url, err := uploadFile(ctx, c.Client, imagePath, "books")
		if err != nil {
			return models.Book{}, err
		}
		p.ImageURL = url
	}
	updated, err := c.Client.UpdateBook(ctx, id, p)
	if err != nil {
		return models.Book{}, err
	}
	c.State.Books = replace(c.State.Books, updated, func(x models.Book) bool { return x.ID == id })
	if imagePath != "" {
		c.dropImage(ctx, previous, p.ImageURL, "books")
	}
	return updated, nil
}

func (c *Console) DeleteBook(ctx context.Context, id string) error {
	if err := c.Client.DeleteBook(ctx, id); err != nil {
		return err
	}
	c.State.Books = remove(c.State.Books, func(x models.Book) bool { return x.ID == id })
	return nil
}

func (c *Console) MarkSeen(ctx context.Context, id int64, seen bool) (models.Contact, error) {
	updated, err := c.Client.MarkSeen(ctx, id, seen)
	if err != nil {
		return models.Contact{}, err
	}
	c.State.Contacts = replace(c.State.Contacts, updated, func(x models.Contact) bool { return x.ID == id })
	return updated, nil
}

func (c *Console) DeleteContact(ctx context.Context, id int64) error {
	if err := c.Client.DeleteContact(ctx, id); err != nil {
		return err
	}
	c.State.Contacts = remove(c.State.Contacts, func(x models.Contact) bool { return x.ID == id })
	return nil
}

// dropImage deletes the object behind old when it came from our bucket and
// is no longer referenced. Failures only leave an orphan, so they are logged.
func (c *Console) dropImage(ctx context.Context, old, current, folder string) {
	if old == "" || old == current {
		return
	}
	key, ok := storage.KeyFromURL(old, folder)
	if !ok {
		return
	}
	if err := c.Client.DeleteUpload(ctx, key); err != nil {
		slog.Warn("[console] stale image not deleted", "key", key, "error", err)
	}
}

func uploadFile(ctx context.Context, up ImageUploader, path, folder string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	res, err := up.Upload(ctx, filepath.Base(path), f, folder)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return res.URL, nil
}

func replace[T any](list []T, v T, match func(T) bool) []T {
	out := make([]T, len(list))
	for i, x := range list {
		if match(x) {
			x = v
		}
		out[i] = x
	}
	return out
}

func remove[T any](list []T, match func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, x := range list {
		if !match(x) {
			out = append(out, x)
		}
	}
	return out
}
