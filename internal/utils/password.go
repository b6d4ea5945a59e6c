package utils

import (
	"crypto/subtle" // Constant time comparison for legacy plain passwords
	"strings"       // Prefix check for bcrypt hashes

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash with default cost
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// IsHashed reports whether the stored value is a bcrypt hash
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares a plain password with the stored value.
// Rows written by the old console carry plain passwords, so both forms are accepted.
func CheckPassword(stored, password string) bool {
	if stored == "" {
		return false // Accounts without a password cannot log in
	}
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
