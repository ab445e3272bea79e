package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when caller-supplied data violates a
	// precondition: empty plaintext, an unsafe identity, a missing payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKey is returned for malformed or unusable key material.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrMalformedToken is returned for structurally invalid encrypted
	// tokens: missing delimiter, non-positive or mismatched chunk count.
	ErrMalformedToken = errors.New("malformed encrypted token")

	// ErrUnauthorized is returned when a shared secret does not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for a missing identity or file.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps disk I/O failures surfaced by the store.
	ErrPersistence = errors.New("persistence failure")
)

// ChunkDecryptError reports which chunk of a token failed to decrypt.
// A wrong key and corrupted ciphertext are indistinguishable by design.
type ChunkDecryptError struct {
	Index int // 1-based
}

func (e *ChunkDecryptError) Error() string {
	return fmt.Sprintf("chunk %d: decryption failed", e.Index)
}
