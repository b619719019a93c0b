package utils

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen and MaxPasswordBytes bound accepted passwords.  bcrypt
// ignores everything past 72 bytes, so longer inputs are refused.
const (
	MinPasswordLen   = 8
	MaxPasswordBytes = 72
)

// ErrWeakPassword is returned by CheckPassword for out-of-range input.
var ErrWeakPassword = errors.New("password must be 8 to 72 bytes long")

// CheckPassword enforces the length rules on a plain password.
func CheckPassword(plain string) error {
	if utf8.RuneCountInString(plain) < MinPasswordLen || len(plain) > MaxPasswordBytes {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
