package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"lockdrop/internal/domain"
)

// VaultStore keeps per-identity directories on disk.
type VaultStore struct {
	root string

	mu sync.Mutex
	// locks serialises appends per identity. Entries are never evicted:
	// one mutex per identity directory on disk, a set that stays small
	// and long-lived.
	locks map[string]*sync.Mutex
}

// NewVaultStore returns a store rooted at dir. The root itself is created
// lazily with the first identity.
func NewVaultStore(dir string) *VaultStore {
	return &VaultStore{root: dir, locks: make(map[string]*sync.Mutex)}
}

// checkIdentity rejects identities that cannot be used verbatim as a path
// segment. The reference behaviour trusted the caller here; rejecting
// traversal attempts is a deliberate hardening, see DESIGN.md.
func checkIdentity(identity string) error {
	switch {
	case strings.TrimSpace(identity) == "":
		return fmt.Errorf("%w: empty identity", domain.ErrInvalidInput)
	case strings.ContainsAny(identity, `/\`),
		identity == "." || identity == "..",
		strings.ContainsRune(identity, 0):
		return fmt.Errorf("%w: unsafe identity %q", domain.ErrInvalidInput, identity)
	}
	return nil
}

// EnsureDirectory creates the identity's directory (and the data root) if
// absent and returns the resolved path. Idempotent.
func (s *VaultStore) EnsureDirectory(identity string) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, identity)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return dir, nil
}

// WriteCategory overwrites the category file with the encoded token.
// Concurrent writers race to last-write-wins; the atomic replace in
// writeFile guarantees readers never observe a torn token.
func (s *VaultStore) WriteCategory(identity string, c domain.Category, t domain.EncryptedToken) error {
	dir, err := s.EnsureDirectory(identity)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, c.File()), []byte(t.Encode()), 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// AppendLog appends one record to the identity's log file. Appends for a
// single identity are serialised so records never interleave mid-line.
func (s *VaultStore) AppendLog(identity, entry string) error {
	dir, err := s.EnsureDirectory(identity)
	if err != nil {
		return err
	}

	lock := s.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	if err := appendLine(filepath.Join(dir, domain.LogFile), entry, 0o600); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// ListIdentities enumerates directory entries under the data root that are
// themselves directories. A missing root means no identities yet.
func (s *VaultStore) ListIdentities() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// Files reports which of the well-known files exist for the identity,
// with size, modification time and whether the content is encrypted.
func (s *VaultStore) Files(identity string) ([]domain.FileInfo, error) {
	if err := checkIdentity(identity); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.root, identity)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: identity %q", domain.ErrNotFound, identity)
	}

	var infos []domain.FileInfo
	for _, name := range domain.KnownFiles {
		st, err := os.Stat(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		infos = append(infos, domain.FileInfo{
			Name:      name,
			Size:      st.Size(),
			Modified:  st.ModTime(),
			Encrypted: name != domain.LogFile,
		})
	}
	return infos, nil
}

// ReadFile returns the raw content of one well-known file. Category files
// come back still encrypted; decryption happens operator-side, offline.
func (s *VaultStore) ReadFile(identity, name string) ([]byte, domain.FileInfo, error) {
	if err := checkIdentity(identity); err != nil {
		return nil, domain.FileInfo{}, err
	}
	if !slices.Contains(domain.KnownFiles, name) {
		return nil, domain.FileInfo{}, fmt.Errorf("%w: file %q", domain.ErrNotFound, name)
	}

	path := filepath.Join(s.root, identity, name)
	st, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.FileInfo{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, identity, name)
	}
	if err != nil {
		return nil, domain.FileInfo{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.FileInfo{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return b, domain.FileInfo{
		Name:      name,
		Size:      st.Size(),
		Modified:  st.ModTime(),
		Encrypted: name != domain.LogFile,
	}, nil
}

func (s *VaultStore) identityLock(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		s.locks[identity] = l
	}
	return l
}

// Compile-time assertion that VaultStore implements domain.Vault.
var _ domain.Vault = (*VaultStore)(nil)
