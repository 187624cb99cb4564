package domain

import "time"

// Account is the persistent user record. PasswordHash never leaves the
// auth packages; outward-facing shapes live in the dto package.
type Account struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}
