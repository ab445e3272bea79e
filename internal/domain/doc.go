// Package domain defines the core types shared across lockdrop.
//
// Contents
//
//   - EncryptedToken, the self-describing chunked ciphertext carried on the
//     wire and on disk (ParseToken / Encode)
//   - Envelope, the authenticated unit accepted by the ingestion endpoint
//   - Category, the four encrypted snapshot kinds and their file names
//   - The error taxonomy (ErrInvalidInput, ErrInvalidKey, ErrMalformedToken,
//     ChunkDecryptError, ErrUnauthorized, ErrNotFound, ErrPersistence)
//   - Storage and ingestion interfaces implemented by internal/store and
//     internal/services/ingest
//
// The package has no dependencies beyond the standard library so every other
// package can import it freely.
package domain
