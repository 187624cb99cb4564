package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already exists")
	ErrUsernameAlreadyInUse = errors.New("username already exists")
	ErrExpiredToken         = errors.New("token has expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInternal             = errors.New("internal error")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field-level input errors. It is produced before
// any storage access happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ConstraintViolationError is returned by the repository when an insert hits
// a unique constraint. The service remaps it to the matching duplicate error
// using the constraint name.
type ConstraintViolationError struct {
	Constraint string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation: %s", e.Constraint)
}
