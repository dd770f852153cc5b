package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 64

// NewRefreshToken returns a cryptographically secure random opaque token:
// 64 bytes from crypto/rand, base64url encoded. Refresh tokens carry no
// structure; their only property is unguessability.
func NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a hex
// string. Only the hash is persisted, so a leaked database row cannot be
// replayed as a credential.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
