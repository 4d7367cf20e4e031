package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString returns a hex-encoded random string read from
// crypto/rand. lengthInBytes=32 yields a 64-character string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashRefreshToken hashes a raw refresh token for at-rest storage. Refresh
// tokens are long-lived, so only the hash ever touches the database.
func HashRefreshToken(token string) string {
	return HashOneTimeCredential(token)
}

// CompareRefreshTokenHash reports whether the raw token matches the stored
// hash. The comparison is constant-time.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	computed := HashRefreshToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
