package dto

import (
	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

// LoginInput carries the credentials for a login attempt. Identifier is
// either the account email or the username.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate only rejects empty fields; password strength is enforced at
// registration, never at login.
func (in LoginInput) Validate() *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}

	if in.Identifier == "" {
		verr.Add("identifier", "must not be empty")
	}
	if in.Password == "" {
		verr.Add("password", "must not be empty")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
