package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BcryptHasher implements ports.PasswordHasher. Cost 0 means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

// Hash returns a salted bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	if h.Cost == 0 {
		return HashPassword(password)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(hash), err
}

// Verify reports whether password matches hash.
func (h BcryptHasher) Verify(password, hash string) bool {
	return CheckPasswordHash(password, hash)
}
