package dto

import (
	"unicode"

	apperrors "github.com/bdb-123/module13-is601/internal/errors"
)

type RegisterInput struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks the registration shape and returns nil when the input is
// well formed. ConfirmPassword is optional but must match when supplied.
func (in RegisterInput) Validate() *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}

	if !validEmail(in.Email) {
		verr.Add("email", "must be a valid email address")
	}
	if l := len(in.Username); l < 3 || l > 50 {
		verr.Add("username", "must be between 3 and 50 characters")
	}
	if l := len(in.FirstName); l < 1 || l > 50 {
		verr.Add("first_name", "must be between 1 and 50 characters")
	}
	if l := len(in.LastName); l < 1 || l > 50 {
		verr.Add("last_name", "must be between 1 and 50 characters")
	}
	if msg := passwordStrength(in.Password); msg != "" {
		verr.Add("password", msg)
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		verr.Add("confirm_password", "passwords do not match")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func passwordStrength(password string) string {
	if len(password) < 8 {
		return "must be at least 8 characters long"
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return "must contain at least one uppercase letter"
	case !lower:
		return "must contain at least one lowercase letter"
	case !digit:
		return "must contain at least one digit"
	}
	return ""
}
