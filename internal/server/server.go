package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lockdrop/internal/domain"
	"lockdrop/internal/logging"
)

// requestTimeout bounds how long any single request may hold a handler.
const requestTimeout = 30 * time.Second

// Config holds the server's runtime options.
type Config struct {
	ListenAddr   string
	IngestKey    string // shared secret for POST /api
	PanelKey     string // separate secret for the /panel/* surface
	MaxBodyBytes int64  // ingest body cap; generous for bulk payloads
	RateRPS      float64
	RateBurst    int
}

// Server owns the listener and routes requests to the ingestion policy and
// the vault.
type Server struct {
	cfg     Config
	ingest  domain.Ingestor
	vault   domain.Vault
	limiter *sourceLimiter
	log     logging.Logger
	http    *http.Server
}

// New assembles the HTTP server. It does not start listening.
func New(cfg Config, ingest domain.Ingestor, vault domain.Vault) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 32 << 20
	}

	s := &Server{
		cfg:     cfg,
		ingest:  ingest,
		vault:   vault,
		limiter: newSourceLimiter(cfg.RateRPS, cfg.RateBurst),
		log:     logging.NewLogger("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api", s.handleIngest)
	mux.HandleFunc("GET /panel/identities", s.handleIdentities)
	mux.HandleFunc("GET /panel/files", s.handleFiles)
	mux.HandleFunc("GET /panel/file", s.handleFile)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.recoverMiddleware(s.metricsMiddleware(mux)),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		IdleTimeout:  2 * time.Minute,
	}
	return s
}

// Handler exposes the composed handler chain, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.ListenAddr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	err := <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
