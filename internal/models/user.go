package models

import "time"

// User is a stored identity record. Username and email are unique and
// immutable after creation; no update or delete path is exposed.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}
