package session

import (
	"crypto/rand"
	"fmt"
	"os"
)

const KeyLen = 32

// LoadOrCreateKey returns the cookie-signing key stored at path, generating
// and persisting a fresh one on first startup. An existing key is reused
// unmodified so sessions survive restarts.
func LoadOrCreateKey(path string) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil {
		if len(data) != KeyLen {
			return nil, fmt.Errorf("session key file %s must be %d bytes, got %d", path, KeyLen, len(data))
		}
		return data, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	key := make([]byte, KeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
