package crypto

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"lockdrop/internal/domain"
)

// MaxChunkSize is the largest plaintext slice encrypted per RSA operation.
// A 2048-bit key with OAEP/SHA-256 padding tops out at 190 bytes; staying
// well under that ceiling leaves margin for key-size variation.
const MaxChunkSize = 190

// maxPlaintext returns the OAEP payload ceiling for the key.
func maxPlaintext(pub *rsa.PublicKey) int {
	return pub.Size() - 2*sha256.Size - 2
}

// Encrypt splits plaintext into chunks of at most MaxChunkSize bytes,
// encrypts each independently with RSA-OAEP/SHA-256 and returns the
// assembled token. Chunk order is significant: chunk i decrypts to plaintext
// bytes [i*MaxChunkSize, (i+1)*MaxChunkSize).
func Encrypt(plaintext []byte, pub *rsa.PublicKey) (domain.EncryptedToken, error) {
	if len(plaintext) == 0 {
		return domain.EncryptedToken{}, fmt.Errorf("%w: empty plaintext", domain.ErrInvalidInput)
	}
	if pub == nil || maxPlaintext(pub) < MaxChunkSize {
		return domain.EncryptedToken{}, fmt.Errorf("%w: public key too small for %d-byte chunks",
			domain.ErrInvalidKey, MaxChunkSize)
	}

	chunks := make([]string, 0, (len(plaintext)+MaxChunkSize-1)/MaxChunkSize)
	for off := 0; off < len(plaintext); off += MaxChunkSize {
		end := off + MaxChunkSize
		if end > len(plaintext) {
			end = len(plaintext)
		}
		ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext[off:end], nil)
		if err != nil {
			return domain.EncryptedToken{}, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
		}
		chunks = append(chunks, base64.StdEncoding.EncodeToString(ct))
	}
	return domain.EncryptedToken{Chunks: chunks}, nil
}

// Decrypt reverses Encrypt. The token must already be structurally valid
// (ParseToken enforces the chunk-count invariant); a failure on any chunk
// aborts the whole operation with a ChunkDecryptError carrying the 1-based
// index, and no partial plaintext is ever returned.
func Decrypt(t domain.EncryptedToken, priv *rsa.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: nil private key", domain.ErrInvalidKey)
	}
	if t.ChunkCount() == 0 {
		return nil, fmt.Errorf("%w: no chunks", domain.ErrMalformedToken)
	}

	var out bytes.Buffer
	for i, c := range t.Chunks {
		raw, err := base64.StdEncoding.DecodeString(c)
		if err != nil {
			return nil, &domain.ChunkDecryptError{Index: i + 1}
		}
		pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, raw, nil)
		if err != nil {
			return nil, &domain.ChunkDecryptError{Index: i + 1}
		}
		out.Write(pt)
	}
	return out.Bytes(), nil
}
