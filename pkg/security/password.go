package security

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch = errors.New("invalid password")
	MinPasswordLen      = 6
)

// PasswordHasher hashes account passwords and checks login attempts.
//
// Accounts created before hashing was introduced hold their password in
// plain text. Compare accepts those, and NeedsRehash reports them so the
// caller can store a hash on the next successful login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
	NeedsRehash(stored string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. An out of range cost falls back
// to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(stored, password string) error {
	if stored == "" {
		return ErrPasswordMismatch
	}
	if !isBcrypt(stored) {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
			return ErrPasswordMismatch
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

func (b *bcryptHasher) NeedsRehash(stored string) bool {
	if !isBcrypt(stored) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(stored))
	return err != nil || cost != b.cost
}

func isBcrypt(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
