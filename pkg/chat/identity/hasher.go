package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher derives a privacy-preserving guest identifier from a raw network
// address. The salt is a server-side secret; without it the address cannot
// practically be recovered from the stored hash.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Hash returns hex(SHA-256(rawAddress + ":" + salt)). Deterministic for a
// given salt; empty input is hashed like any other string.
func (h *Hasher) Hash(rawAddress string) string {
	sum := sha256.Sum256([]byte(rawAddress + ":" + h.salt))
	return hex.EncodeToString(sum[:])
}
