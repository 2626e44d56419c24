// Package console is the admin dashboard's client side: an HTTP client over
// the record API plus the local state, search and paging the dashboard
// works with.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/models"
)

// APIError is any non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// ContentPayload is the create/update body for a Content row. Nil optional
// fields are omitted and take the server defaults.
type ContentPayload struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Body          string     `json:"body"`
	Category      string     `json:"category"`
	Slug          string     `json:"slug"`
	DocLink       *string    `json:"docLink,omitempty"`
	ImageURL      *string    `json:"imageUrl,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
}

type BookPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
	BuyLink     string `json:"buyLink"`
}

type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token is sent as a Bearer credential when set.
	Token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Login exchanges credentials for a session token and keeps it on c.
func (c *Client) Login(ctx context.Context, email, password string) (time.Time, error) {
	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", in, &out); err != nil {
		return time.Time{}, err
	}
	c.Token = out.AccessToken
	return time.Unix(out.ExpiresAt, 0), nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/logout", nil, nil); err != nil {
		return err
	}
	c.Token = ""
	return nil
}

// Contents

func (c *Client) Contents(ctx context.Context) ([]models.Content, error) {
	var out []models.Content
	err := c.doJSON(ctx, http.MethodGet, "/api/contents", nil, &out)
	return out, err
}

func (c *Client) Content(ctx context.Context, id int64) (models.Content, error) {
	var out models.Content
	err := c.doJSON(ctx, http.MethodGet, "/api/contents/"+itoa(id), nil, &out)
	return out, err
}

func (c *Client) CreateContent(ctx context.Context, p ContentPayload) (models.Content, error) {
	var out models.Content
	err := c.doJSON(ctx, http.MethodPost, "/api/contents", p, &out)
	return out, err
}

func (c *Client) UpdateContent(ctx context.Context, id int64, p ContentPayload) (models.Content, error) {
	var out models.Content
	err := c.doJSON(ctx, http.MethodPut, "/api/contents/"+itoa(id), p, &out)
	return out, err
}

func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/contents/"+itoa(id), nil, nil)
}

// Books

func (c *Client) Books(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	err := c.doJSON(ctx, http.MethodGet, "/api/books", nil, &out)
	return out, err
}

func (c *Client) Book(ctx context.Context, id string) (models.Book, error) {
	var out models.Book
	err := c.doJSON(ctx, http.MethodGet, "/api/books/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateBook(ctx context.Context, p BookPayload) (models.Book, error) {
	var out models.Book
	err := c.doJSON(ctx, http.MethodPost, "/api/books", p, &out)
	return out, err
}

func (c *Client) UpdateBook(ctx context.Context, id string, p BookPayload) (models.Book, error) {
	var out models.Book
	err := c.doJSON(ctx, http.MethodPut, "/api/books/"+id, p, &out)
	return out, err
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/books/"+id, nil, nil)
}

// Contacts

func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	err := c.doJSON(ctx, http.MethodGet, "/api/contacts", nil, &out)
	return out, err
}

func (c *Client) MarkSeen(ctx context.Context, id int64, seen bool) (models.Contact, error) {
	var out models.Contact
	err := c.doJSON(ctx, http.MethodPatch, "/api/contacts/"+itoa(id), map[string]bool{"seen": seen}, &out)
	return out, err
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/contacts/"+itoa(id), nil, nil)
}

// ServerStats asks the server for authoritative counts.
func (c *Client) ServerStats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.doJSON(ctx, http.MethodGet, "/api/admin/stats", nil, &out)
	return out, err
}

// Upload sends one image as multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, folder string) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return UploadResult{}, err
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/admin/uploads", &buf)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out UploadResult
	err = c.send(req, &out)
	return out, err
}

// DeleteUpload removes an object previously returned by Upload.
func (c *Client) DeleteUpload(ctx context.Context, key string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/uploads/"+key, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// readAPIError understands both the {message} and {error} envelopes.
func readAPIError(resp *http.Response) error {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(b, &env)
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
