package models

import "time"

// Content is a publishable blog post, story, novel or book description.
type Content struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Body          string    `json:"body"`
	DocLink       *string   `json:"docLink"`
	Category      string    `json:"category"`
	ImageURL      *string   `json:"imageUrl"`
	PublishedDate time.Time `json:"publishedDate"`
	Featured      bool      `json:"featured"`
	Slug          string    `json:"slug"`
}

// ContentInput is the normalized write shape for create and update.
type ContentInput struct {
	Title         string
	Description   string
	Body          string
	DocLink       *string
	Category      string
	ImageURL      *string
	PublishedDate time.Time
	Featured      bool
	Slug          string
}

type ContentFilter struct {
	Slug     string
	Category string
}
