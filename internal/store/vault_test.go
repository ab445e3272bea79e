package store_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lockdrop/internal/domain"
	"lockdrop/internal/store"
)

func TestEnsureDirectory_Idempotent(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())

	first, err := s.EnsureDirectory("user@example.com")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := s.EnsureDirectory("user@example.com")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}
	if st, err := os.Stat(first); err != nil || !st.IsDir() {
		t.Fatalf("missing identity dir: %v", err)
	}
}

func TestEnsureDirectory_RejectsUnsafeIdentities(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())

	for _, id := range []string{"", "  ", "..", ".", "../evil", "a/b", `a\b`, "nul\x00byte"} {
		if _, err := s.EnsureDirectory(id); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("EnsureDirectory(%q) err = %v, want ErrInvalidInput", id, err)
		}
	}
}

func TestWriteCategory_OverwritesLatest(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())
	id := "user@example.com"

	old := domain.EncryptedToken{Chunks: []string{"b2xk"}}
	if err := s.WriteCategory(id, domain.CategoryCookies, old); err != nil {
		t.Fatalf("first write: %v", err)
	}
	latest := domain.EncryptedToken{Chunks: []string{"bmV3", "ZXI="}}
	if err := s.WriteCategory(id, domain.CategoryCookies, latest); err != nil {
		t.Fatalf("second write: %v", err)
	}

	b, info, err := s.ReadFile(id, "cookies.txt")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != latest.Encode() {
		t.Fatalf("content = %q, want latest token only", b)
	}
	if !info.Encrypted {
		t.Fatal("category file not flagged encrypted")
	}
}

func TestAppendLog_Accumulates(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())
	id := "user@example.com"

	if err := s.AppendLog(id, "first record"); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := s.AppendLog(id, "second record"); err != nil {
		t.Fatalf("second append: %v", err)
	}

	b, info, err := s.ReadFile(id, domain.LogFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "first record" || lines[1] != "second record" {
		t.Fatalf("log lines = %q", lines)
	}
	if info.Encrypted {
		t.Fatal("log file flagged encrypted")
	}
}

func TestAppendLog_ConcurrentRecordsStayIntact(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())
	id := "user@example.com"

	const n = 64
	// Long records make a torn write visible: any interleaving splices
	// one record's filler into another's line.
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := fmt.Sprintf("record-%02d %s", i, strings.Repeat("x", 4096))
			if err := s.AppendLog(id, record); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	b, _, err := s.ReadFile(id, domain.LogFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	seen := make(map[string]bool, n)
	for _, line := range lines {
		prefix, filler, ok := strings.Cut(line, " ")
		if !ok || filler != strings.Repeat("x", 4096) {
			t.Fatalf("spliced record: %.80q...", line)
		}
		if seen[prefix] {
			t.Fatalf("duplicate record %q", prefix)
		}
		seen[prefix] = true
	}
}

func TestListIdentities(t *testing.T) {
	root := t.TempDir()
	s := store.NewVaultStore(filepath.Join(root, "data"))

	// Missing data root means no identities, not an error.
	ids, err := s.ListIdentities()
	if err != nil {
		t.Fatalf("list on missing root: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %v, want none", ids)
	}

	for _, id := range []string{"a@x.com", "b@y.org"} {
		if _, err := s.EnsureDirectory(id); err != nil {
			t.Fatal(err)
		}
	}
	ids, err = s.ListIdentities()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 entries", ids)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())
	id := "user@example.com"
	if _, err := s.EnsureDirectory(id); err != nil {
		t.Fatal(err)
	}

	// Absent well-known file.
	if _, _, err := s.ReadFile(id, "history.txt"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("absent file err = %v, want ErrNotFound", err)
	}
	// Name outside the fixed set, even if such a file existed.
	if _, _, err := s.ReadFile(id, "passwd"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown name err = %v, want ErrNotFound", err)
	}
}

func TestFiles_ReportsPresentFilesOnly(t *testing.T) {
	s := store.NewVaultStore(t.TempDir())
	id := "user@example.com"

	if err := s.WriteCategory(id, domain.CategoryHistory, domain.EncryptedToken{Chunks: []string{"YQ=="}}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendLog(id, "record"); err != nil {
		t.Fatal(err)
	}

	infos, err := s.Files(id)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("infos = %+v, want history.txt and logs.txt", infos)
	}
	for _, info := range infos {
		if info.Size == 0 {
			t.Fatalf("%s reported empty", info.Name)
		}
		wantEncrypted := info.Name != domain.LogFile
		if info.Encrypted != wantEncrypted {
			t.Fatalf("%s encrypted = %v, want %v", info.Name, info.Encrypted, wantEncrypted)
		}
	}

	if _, err := s.Files("nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown identity err = %v, want ErrNotFound", err)
	}
}
