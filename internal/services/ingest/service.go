package ingest

import (
	"bytes"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lockdrop/internal/crypto"
	"lockdrop/internal/domain"
	"lockdrop/internal/logging"
	"lockdrop/internal/metrics"
)

// Service applies the ingestion policy. It is safe for concurrent use; all
// shared state lives in the vault.
type Service struct {
	vault domain.Vault
	pub   *rsa.PublicKey
	log   logging.Logger
	now   func() time.Time
}

// New returns a service writing through vault and encrypting with pub.
func New(vault domain.Vault, pub *rsa.PublicKey) *Service {
	return &Service{
		vault: vault,
		pub:   pub,
		log:   logging.NewLogger("ingest"),
		now:   time.Now,
	}
}

// Ingest dispatches one envelope. A nil return means the caller owes the
// client a success acknowledgment, including the report-only branch.
func (s *Service) Ingest(env domain.Envelope) error {
	kind := strings.ToLower(strings.TrimSpace(env.Type))
	identity := env.Identity()
	ts := env.Timestamp(s.now)

	if cat, ok := domain.ParseCategory(kind); ok {
		if err := s.storeCategory(identity, cat, env.Data); err != nil {
			metrics.IngestMessages.WithLabelValues(kind, "error").Inc()
			return err
		}
		metrics.IngestMessages.WithLabelValues(kind, "stored").Inc()
		return nil
	}

	switch kind {
	case "opened", "input":
		entry := fmt.Sprintf("%s | %s | %s | %s", ts, kind, env.Field, env.Message)
		if err := s.vault.AppendLog(identity, entry); err != nil {
			metrics.IngestMessages.WithLabelValues(kind, "error").Inc()
			return err
		}
		metrics.IngestMessages.WithLabelValues(kind, "logged").Inc()
		return nil

	case "geolocation":
		payload, err := canonicalData(env.Data)
		if err != nil {
			metrics.IngestMessages.WithLabelValues(kind, "error").Inc()
			return err
		}
		entry := fmt.Sprintf("%s | geolocation | %s", ts, payload)
		if err := s.vault.AppendLog(identity, entry); err != nil {
			metrics.IngestMessages.WithLabelValues(kind, "error").Inc()
			return err
		}
		metrics.IngestMessages.WithLabelValues(kind, "logged").Inc()
		return nil

	default:
		// Report-only: acknowledged but never persisted.
		s.log.Infof("unhandled message type %q from %s", env.Type, identity)
		metrics.IngestMessages.WithLabelValues("other", "reported").Inc()
		return nil
	}
}

func (s *Service) storeCategory(identity string, cat domain.Category, data json.RawMessage) error {
	payload, err := canonicalData(data)
	if err != nil {
		return err
	}

	start := time.Now()
	token, err := crypto.Encrypt(payload, s.pub)
	if err != nil {
		return err
	}
	metrics.EncryptSeconds.Observe(time.Since(start).Seconds())

	return s.vault.WriteCategory(identity, cat, token)
}

// canonicalData compacts the raw Data payload to a canonical byte form so
// the cipher never inspects payload shape. An absent payload is an input
// error; there is nothing meaningful to persist.
func canonicalData(data json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: missing data payload", domain.ErrInvalidInput)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return buf.Bytes(), nil
}

// Compile-time assertion that Service implements domain.Ingestor.
var _ domain.Ingestor = (*Service)(nil)
