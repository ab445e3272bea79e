package app

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lockdrop/internal/crypto"
)

// Well-known key file names under the configured key directory.
const (
	PublicKeyFile  = "public.pem"
	PrivateKeyFile = "private.pem"
	SealedKeyFile  = "private.enc"
)

// LoadPublicKey resolves the server's public key: environment value first,
// key-directory file fallback. Absence is startup-fatal for the serve role;
// the caller surfaces the error before accepting any request.
func LoadPublicKey(cfg Config) (*rsa.PublicKey, error) {
	if text := os.Getenv(EnvPublicKey); strings.TrimSpace(text) != "" {
		return crypto.ParsePublicKey(text)
	}
	path := filepath.Join(cfg.KeyDir, PublicKeyFile)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("public key required: set %s or provide %s", EnvPublicKey, path)
	}
	if err != nil {
		return nil, err
	}
	return crypto.ParsePublicKey(string(b))
}

// LoadPrivateKey resolves the operator's private key: environment value
// first, then an explicit path, then the key-directory files (plain PEM,
// then a passphrase-sealed keystore). Only offline operator tooling calls
// this; the serving process never holds private material.
func LoadPrivateKey(cfg Config, path, passphrase string) (*rsa.PrivateKey, error) {
	if text := os.Getenv(EnvPrivateKey); strings.TrimSpace(text) != "" {
		return crypto.ParsePrivateKey(text)
	}

	candidates := []string{path}
	if path == "" {
		candidates = []string{
			filepath.Join(cfg.KeyDir, PrivateKeyFile),
			filepath.Join(cfg.KeyDir, SealedKeyFile),
		}
	}

	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return parsePrivateKeyBytes(b, passphrase)
	}
	return nil, fmt.Errorf("private key required: set %s or provide %s",
		EnvPrivateKey, filepath.Join(cfg.KeyDir, PrivateKeyFile))
}

// parsePrivateKeyBytes accepts either plain PEM or a sealed keystore blob.
func parsePrivateKeyBytes(b []byte, passphrase string) (*rsa.PrivateKey, error) {
	text := strings.TrimSpace(string(b))
	if strings.Contains(text, "-----BEGIN") || !strings.HasPrefix(text, "{") {
		return crypto.ParsePrivateKey(text)
	}
	pemBytes, err := crypto.OpenPrivateKey(passphrase, []byte(text))
	if err != nil {
		return nil, err
	}
	return crypto.ParsePrivateKey(string(pemBytes))
}
