package domain

// Vault persists per-identity files under a data root.
type Vault interface {
	// EnsureDirectory creates the identity's directory if absent and
	// returns its resolved path. Idempotent.
	EnsureDirectory(identity string) (string, error)

	// WriteCategory overwrites the category file with the encoded token.
	WriteCategory(identity string, c Category, t EncryptedToken) error

	// AppendLog appends one newline-terminated record to the identity's
	// log file, never touching prior content.
	AppendLog(identity, entry string) error

	// ListIdentities enumerates identities known to the store.
	ListIdentities() ([]string, error)

	// Files reports the known files present for an identity.
	Files(identity string) ([]FileInfo, error)

	// ReadFile returns the raw content of one of the well-known files.
	ReadFile(identity, name string) ([]byte, FileInfo, error)
}

// Ingestor applies the persistence policy for one envelope.
type Ingestor interface {
	Ingest(env Envelope) error
}
