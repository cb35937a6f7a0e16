package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyFileName = "auth.key"

// LoadOrGenerateKey returns the server's symmetric token key as a hex string.
// On first run it generates a fresh 256-bit key and persists it under the
// data directory so tokens survive restarts.
func LoadOrGenerateKey(dataPath string) (string, error) {
	keyPath := filepath.Join(dataPath, keyFileName)

	data, err := os.ReadFile(keyPath)
	if err == nil {
		keyHex := strings.TrimSpace(string(data))
		if len(keyHex) != keyHexSize {
			return "", fmt.Errorf("key file %s is corrupt: expected %d hex characters, got %d", keyPath, keyHexSize, len(keyHex))
		}
		if _, err := hex.DecodeString(keyHex); err != nil {
			return "", fmt.Errorf("key file %s is corrupt: %w", keyPath, err)
		}
		return keyHex, nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read key file: %w", err)
	}

	keyBytes := make([]byte, keyBytesSize)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	keyHex := hex.EncodeToString(keyBytes)

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	// Key file is a secret, keep it owner-only.
	if err := os.WriteFile(keyPath, []byte(keyHex+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write key file: %w", err)
	}

	return keyHex, nil
}
