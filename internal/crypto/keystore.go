package crypto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"lockdrop/internal/domain"
)

// The current supported version of the sealed keystore format on disk.
const keystoreFormatVersion = 1

// blob is the on-disk JSON structure holding the sealed private key and the
// KDF parameters used to derive its key.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// SealPrivateKey encrypts PEM-encoded private key material under a
// passphrase, returning a versioned JSON blob for storage at rest.
func SealPrivateKey(passphrase string, pemBytes []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()

	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], pemBytes, salt[:])

	return json.Marshal(blob{V: keystoreFormatVersion, Salt: salt[:], N: N, R: r, P: p, Cipher: ct})
}

// OpenPrivateKey reverses SealPrivateKey. A wrong passphrase and a corrupted
// blob are indistinguishable; both surface as ErrInvalidKey.
func OpenPrivateKey(passphrase string, data []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(data, &bl); err != nil {
		return nil, fmt.Errorf("%w: not a sealed keystore", domain.ErrInvalidKey)
	}
	if bl.V > keystoreFormatVersion {
		return nil, fmt.Errorf("%w: unsupported keystore version %d", domain.ErrInvalidKey, bl.V)
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	defer zeroBytes(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [12]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or corrupted keystore", domain.ErrInvalidKey)
	}
	return pt, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
