package app

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lockdrop/internal/crypto"
)

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func generated(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		var err error
		if testKey, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			panic(err)
		}
	})
	return testKey
}

func TestLoadPublicKey_FromEnv(t *testing.T) {
	clearEnv(t)
	key := generated(t)

	pemBytes, err := crypto.EncodePublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	// Transport strips the PEM framing; the loader must reconstruct it.
	block, _ := pem.Decode(pemBytes)
	t.Setenv(EnvPublicKey, base64.StdEncoding.EncodeToString(block.Bytes))

	got, err := LoadPublicKey(DefaultConfig())
	if err != nil {
		t.Fatalf("LoadPublicKey: %v", err)
	}
	if got.N.Cmp(key.PublicKey.N) != 0 {
		t.Fatal("loaded key does not match")
	}
}

func TestLoadPublicKey_FromFile(t *testing.T) {
	clearEnv(t)
	key := generated(t)

	cfg := DefaultConfig()
	cfg.KeyDir = t.TempDir()
	pemBytes, err := crypto.EncodePublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.KeyDir, PublicKeyFile), pemBytes, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPublicKey(cfg)
	if err != nil {
		t.Fatalf("LoadPublicKey: %v", err)
	}
	if got.N.Cmp(key.PublicKey.N) != 0 {
		t.Fatal("loaded key does not match")
	}
}

func TestLoadPublicKey_Missing(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.KeyDir = t.TempDir()
	_, err := LoadPublicKey(cfg)
	if err == nil || !strings.Contains(err.Error(), "public key required") {
		t.Fatalf("err = %v, want startup-fatal message", err)
	}
}

func TestLoadPrivateKey_PlainPEM(t *testing.T) {
	clearEnv(t)
	key := generated(t)

	cfg := DefaultConfig()
	cfg.KeyDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.KeyDir, PrivateKeyFile),
		crypto.EncodePrivateKey(key), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPrivateKey(cfg, "", "")
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if got.D.Cmp(key.D) != 0 {
		t.Fatal("loaded key does not match")
	}
}

func TestLoadPrivateKey_SealedKeystore(t *testing.T) {
	clearEnv(t)
	key := generated(t)

	sealed, err := crypto.SealPrivateKey("hunter2", crypto.EncodePrivateKey(key))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.KeyDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(cfg.KeyDir, SealedKeyFile), sealed, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadPrivateKey(cfg, "", "hunter2")
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if got.D.Cmp(key.D) != 0 {
		t.Fatal("loaded key does not match")
	}

	if _, err := LoadPrivateKey(cfg, "", "wrong"); err == nil {
		t.Fatal("wrong passphrase must not open the keystore")
	}
}

func TestLoadPrivateKey_Missing(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.KeyDir = t.TempDir()
	_, err := LoadPrivateKey(cfg, "", "")
	if err == nil || !strings.Contains(err.Error(), "private key required") {
		t.Fatalf("err = %v, want missing-key message", err)
	}
}
