package auth

import "time"

// Account is a registered user able to manage job postings.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Token is a bearer token issued at login.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
