package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenLen is the raw token size in bytes. 16 bytes gives 128 bits of
// entropy, enough to make guessing and collision practically impossible.
const tokenLen = 16

func newToken() (string, error) {
	raw := make([]byte, tokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
