package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/adsignage/billboard-server/internal/core/ports"
)

// Argon2id parameters; changing them invalidates every stored digest.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltLen = 16
)

// Argon2Hasher is the concrete password hashing collaborator. The salt is
// stored next to the digest, so argon2id is used directly rather than a
// scheme that embeds its own salt.
type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

func (h *Argon2Hasher) Hash(plaintext string, salt []byte) []byte {
	return argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// NewCredentials hashes plaintext with a fresh random salt and returns the
// hex-encoded digest and salt ready for persistence.
func NewCredentials(hasher ports.PasswordHasher, plaintext string) (digest, salt string, err error) {
	raw := make([]byte, saltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(hasher.Hash(plaintext, raw)), hex.EncodeToString(raw), nil
}
