package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"reeltrack/internal/models"
)

// ErrWeakPassword is returned when a password fails the minimum length check.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

// ValidatePassword checks if the password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.ErrInvalidCredentials
	}
	return nil
}
