package app

import (
	"crypto/rsa"

	"lockdrop/internal/server"
	"lockdrop/internal/services/ingest"
	"lockdrop/internal/store"
)

// Wire bundles the store, policy service and HTTP server for the daemon.
type Wire struct {
	Config    Config
	PublicKey *rsa.PublicKey
	Vault     *store.VaultStore
	Ingest    *ingest.Service
	Server    *server.Server
}

// NewWire constructs the dependency graph from cfg. Key material is loaded
// exactly once here and passed down explicitly; nothing reads it ambiently
// afterwards.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pub, err := LoadPublicKey(cfg)
	if err != nil {
		return nil, err
	}

	vault := store.NewVaultStore(cfg.DataDir)
	svc := ingest.New(vault, pub)
	srv := server.New(server.Config{
		ListenAddr:   cfg.Listen,
		IngestKey:    cfg.IngestKey,
		PanelKey:     cfg.PanelKey,
		MaxBodyBytes: int64(cfg.MaxBodyMB) << 20,
		RateRPS:      cfg.RateRPS,
		RateBurst:    cfg.RateBurst,
	}, svc, vault)

	return &Wire{Config: cfg, PublicKey: pub, Vault: vault, Ingest: svc, Server: srv}, nil
}
