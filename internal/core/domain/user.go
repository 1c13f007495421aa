package domain

import "time"

// User models a registered account. The password is only ever held as a
// one-way bcrypt hash and is excluded from any JSON rendering.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
