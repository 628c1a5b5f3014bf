// Package auth handles confirmation-code material: generation, hashing
// and the redis-backed store that enforces expiry and single use.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// codeBytes of entropy per confirmation code. 24 bytes comfortably clears
// the unguessability bar and still yields a code short enough to paste
// from an email.
const codeBytes = 24

// GenerateCode returns a URL-safe single-use confirmation code.
func GenerateCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashCode creates a bcrypt hash of the code so the plaintext never sits
// in the store.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckCode verifies a presented code against the stored hash.
func CheckCode(hash, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
