package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"lockdrop/internal/domain"
	"lockdrop/internal/metrics"
)

type ingestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// handleIngest authenticates the envelope against the ingest secret and
// hands it to the policy. Disk writes run to completion even if the client
// disconnects; the response is simply undeliverable then.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	if !s.limiter.allow(clientIP(r), timeNow()) {
		metrics.RateLimited.Inc()
		writeJSON(w, http.StatusTooManyRequests, ingestResponse{Error: "rate limited"})
		return
	}

	var env domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeJSON(w, http.StatusInternalServerError, ingestResponse{Error: "bad envelope: " + err.Error()})
		return
	}

	if !secretEqual(env.AuthKey, s.cfg.IngestKey) {
		writeJSON(w, http.StatusUnauthorized, ingestResponse{Error: domain.ErrUnauthorized.Error()})
		return
	}

	if err := s.ingest.Ingest(env); err != nil {
		s.log.Errorf("ingest %q from %s: %v", env.Type, env.Identity(), err)
		writeJSON(w, http.StatusInternalServerError, ingestResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Success: true})
}

func (s *Server) handleIdentities(w http.ResponseWriter, r *http.Request) {
	if !s.panelAuthorized(w, r) {
		return
	}
	ids, err := s.vault.ListIdentities()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Identities []string `json:"identities"`
	}{Identities: ids})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if !s.panelAuthorized(w, r) {
		return
	}
	infos, err := s.vault.Files(r.URL.Query().Get("identity"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Files []domain.FileInfo `json:"files"`
	}{Files: infos})
}

// handleFile streams a file's raw bytes: category files are still encrypted
// tokens, logs are plaintext. Decryption is the operator's offline problem.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if !s.panelAuthorized(w, r) {
		return
	}
	q := r.URL.Query()
	b, info, err := s.vault.ReadFile(q.Get("identity"), q.Get("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if info.Encrypted {
		w.Header().Set("Content-Type", "application/octet-stream")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// panelAuthorized checks the operator secret in the "key" query parameter.
// The panel secret is distinct from the ingest secret; neither accepts the
// other.
func (s *Server) panelAuthorized(w http.ResponseWriter, r *http.Request) bool {
	if secretEqual(r.URL.Query().Get("key"), s.cfg.PanelKey) {
		return true
	}
	http.Error(w, domain.ErrUnauthorized.Error(), http.StatusUnauthorized)
	return false
}

// writeError maps domain errors onto HTTP statuses for the panel surface.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Errorf("panel: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// secretEqual compares shared secrets in constant time. Empty configured
// secrets never authenticate.
func secretEqual(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
