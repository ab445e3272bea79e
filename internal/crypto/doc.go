// Package crypto exposes the cryptographic primitives used by lockdrop.
//
// Contents
//
//   - Chunked RSA-OAEP encryption and decryption of arbitrary-length
//     plaintext (Encrypt, Decrypt)
//   - PEM key material parsing with framing normalisation for keys stored
//     as bare base64 (ParsePublicKey, ParsePrivateKey, NormalizePEM)
//   - Passphrase-sealed keystore blobs for private keys at rest
//     (SealPrivateKey, OpenPrivateKey)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// OAEP padding is randomised, so encrypting identical plaintext twice yields
// different tokens. That is intentional and relied upon; nothing in lockdrop
// compares ciphertexts. Callers should treat decrypted output and unsealed
// keys as sensitive.
package crypto
