// Package hasher provides password hashing and verification. All credential
// comparisons in the service go through this package; callers never compare
// plaintext directly.
package hasher

//go:generate mockgen -destination=../../mocks/mock_hasher.go -package=mocks github.com/bdb-123/module13-is601/internal/auth/hasher Hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

type Hasher interface {
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash.
	// A mismatch is (false, nil); an error means the stored hash is malformed.
	Verify(plaintext, hash string) (bool, error)

	// NeedsRehash reports whether the stored hash was produced with a lower
	// work factor than currently configured.
	NeedsRehash(hash string) bool
}

// Bcrypt implements Hasher using bcrypt with a configurable cost.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (b *Bcrypt) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
}

func (b *Bcrypt) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < b.cost
}
