package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword rejects passwords shorter than common.MinPasswordLength and
// returns a bcrypt hash of the rest.
func HashPassword(password string) ([]byte, error) {
	if len([]rune(password)) < common.MinPasswordLength {
		return nil, common.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// CheckPassword returns common.ErrorUnauthorized on mismatch.
func CheckPassword(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrorUnauthorized
	}
	return err
}
