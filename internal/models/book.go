package models

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageURL"`
	BuyLink     string    `json:"buyLink"`
	CreatedAt   time.Time `json:"-"`
}

type BookInput struct {
	Title       string
	Description string
	ImageURL    string
	BuyLink     string
}
