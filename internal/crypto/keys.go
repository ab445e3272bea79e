package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"lockdrop/internal/domain"
)

const (
	// PEMTypePublic frames public key material.
	PEMTypePublic = "PUBLIC KEY"
	// PEMTypePrivate frames private key material.
	PEMTypePrivate = "RSA PRIVATE KEY"
)

const pemLineLength = 64

// NormalizePEM restores canonical framing on key text. Keys passed through
// size-constrained configuration channels often arrive as bare base64 with
// literal "\n" escapes; this trims, unescapes, and wraps the body with the
// begin/end markers for blockType when they are missing.
func NormalizePEM(raw, blockType string) string {
	text := strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
	if strings.Contains(text, "-----BEGIN") {
		return text
	}

	body := strings.Join(strings.Fields(text), "")
	var b strings.Builder
	fmt.Fprintf(&b, "-----BEGIN %s-----\n", blockType)
	for len(body) > pemLineLength {
		b.WriteString(body[:pemLineLength])
		b.WriteByte('\n')
		body = body[pemLineLength:]
	}
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "-----END %s-----\n", blockType)
	return b.String()
}

// ParsePublicKey decodes an RSA public key from PEM text, normalising
// missing framing first. PKIX encoding is preferred, PKCS#1 accepted.
func ParsePublicKey(text string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(NormalizePEM(text, PEMTypePublic)))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in public key", domain.ErrInvalidKey)
	}
	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA public key", domain.ErrInvalidKey)
		}
		return rsaPub, nil
	}
	rsaPub, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	return rsaPub, nil
}

// ParsePrivateKey decodes an RSA private key from PEM text, normalising
// missing framing first. PKCS#8 is preferred, PKCS#1 accepted.
func ParsePrivateKey(text string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(NormalizePEM(text, PEMTypePrivate)))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in private key", domain.ErrInvalidKey)
	}
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA private key", domain.ErrInvalidKey)
		}
		return rsaKey, nil
	}
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}
	return rsaKey, nil
}

// EncodePublicKey renders pub as a PKIX PEM block.
func EncodePublicKey(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: PEMTypePublic, Bytes: der}), nil
}

// EncodePrivateKey renders priv as a PKCS#1 PEM block.
func EncodePrivateKey(priv *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  PEMTypePrivate,
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
}
