package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a plaintext password with bcrypt
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check verifies a plaintext password against a stored bcrypt hash
func Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
