package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// Raw entropy of a password reset token. 20 bytes hex-encodes to a
	// 40 character string that fits comfortably in a URL.
	resetTokenSize = 20

	// ResetTokenDuration is how long a password reset token stays valid.
	ResetTokenDuration = time.Hour
)

// GenerateResetToken creates a single-use password reset token.
// The plaintext goes to the user over email; only the hash is stored.
func GenerateResetToken() (string, error) {
	b := make([]byte, resetTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashResetToken returns the hex-encoded SHA-256 digest of a reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
