package models

import "time"

// Admin is a dashboard operator. PasswordHash holds an argon2id PHC string.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats are the dashboard counters, always computed from the store.
type Stats struct {
	Contents       int `json:"contents"`
	Books          int `json:"books"`
	Contacts       int `json:"contacts"`
	UnreadMessages int `json:"unreadMessages"`
}
