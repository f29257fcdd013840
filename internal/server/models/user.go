package models

import "time"

// User is one row of the users table. PasswordHash is opaque to storage.
// LastLogin is nil until the first successful login.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
