package models

import "time"

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}
