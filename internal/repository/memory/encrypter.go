package memory

import (
	"context"
	"crypto/sha256"
)

// Encrypter is a deterministic stand-in for a key management service: it
// returns sha256(plaintext). Output is not reversible and is meant for local
// runs and tests only.
type Encrypter struct{}

func (Encrypter) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	sum := sha256.Sum256(plaintext)
	return sum[:], nil
}
