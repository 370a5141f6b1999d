package helpers

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RandomSecret returns n random bytes hex encoded
func RandomSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashRandomSecret hashes a 20 byte random secret. Accounts created through an
// external provider get one so the password column is never empty.
func HashRandomSecret() (string, error) {
	secret, err := RandomSecret(20)
	if err != nil {
		return "", err
	}
	return HashPassword(secret)
}
