package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category is one of the four snapshot kinds stored encrypted, one file per
// category, latest write wins.
type Category string

const (
	CategoryHistory   Category = "history"
	CategoryCookies   Category = "cookies"
	CategoryBookmarks Category = "bookmarks"
	CategoryDownloads Category = "downloads"
)

// ParseCategory maps a lower-cased message type onto a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryHistory, CategoryCookies, CategoryBookmarks, CategoryDownloads:
		return Category(s), true
	}
	return "", false
}

// File returns the on-disk file name for the category.
func (c Category) File() string { return string(c) + ".txt" }

// LogFile is the append-only plaintext audit file in each identity directory.
const LogFile = "logs.txt"

// KnownFiles lists every file name an identity directory may contain.
var KnownFiles = []string{
	CategoryHistory.File(),
	CategoryCookies.File(),
	CategoryBookmarks.File(),
	CategoryDownloads.File(),
	LogFile,
}

// TokenDelimiter joins the chunk count and the base64 chunks. It never
// appears inside standard base64 output, so splitting on it is unambiguous.
const TokenDelimiter = ":"

// EncryptedToken is a chunked ciphertext: an ordered sequence of
// independently encrypted, base64-encoded chunks.
type EncryptedToken struct {
	Chunks []string
}

// ChunkCount returns the number of chunks.
func (t EncryptedToken) ChunkCount() int { return len(t.Chunks) }

// Encode serialises the token as "<chunk_count>:<b64c1>:...:<b64cN>".
// This is both the wire and the on-disk representation.
func (t EncryptedToken) Encode() string {
	parts := make([]string, 0, len(t.Chunks)+1)
	parts = append(parts, strconv.Itoa(len(t.Chunks)))
	parts = append(parts, t.Chunks...)
	return strings.Join(parts, TokenDelimiter)
}

// ParseToken validates and parses an encoded token. The declared chunk count
// must be a positive integer equal to the number of chunk fields present;
// any mismatch is ErrMalformedToken and no chunk is inspected further.
func ParseToken(s string) (EncryptedToken, error) {
	parts := strings.Split(s, TokenDelimiter)
	if len(parts) < 2 {
		return EncryptedToken{}, fmt.Errorf("%w: missing delimiter", ErrMalformedToken)
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count <= 0 {
		return EncryptedToken{}, fmt.Errorf("%w: bad chunk count %q", ErrMalformedToken, parts[0])
	}
	chunks := parts[1:]
	if count != len(chunks) {
		return EncryptedToken{}, fmt.Errorf("%w: declared %d chunks, found %d",
			ErrMalformedToken, count, len(chunks))
	}
	for _, c := range chunks {
		if c == "" {
			return EncryptedToken{}, fmt.Errorf("%w: empty chunk field", ErrMalformedToken)
		}
	}
	return EncryptedToken{Chunks: chunks}, nil
}

// UnknownIdentity is the sentinel used when a message carries no identity.
const UnknownIdentity = "Unknown"

// Envelope is the unit accepted by POST /api. It is constructed per request
// and discarded afterwards; only its derived effects (a category write or a
// log append) persist.
type Envelope struct {
	Type    string          `json:"Type"`
	Email   string          `json:"Email"`
	Time    string          `json:"Time"`
	Field   string          `json:"Field"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data,omitempty"`
	AuthKey string          `json:"key"`
}

// Identity returns the sender identity, defaulting to UnknownIdentity.
func (e Envelope) Identity() string {
	if id := strings.TrimSpace(e.Email); id != "" {
		return id
	}
	return UnknownIdentity
}

// Timestamp returns the envelope time, or now in UTC RFC 3339 if absent.
func (e Envelope) Timestamp(now func() time.Time) string {
	if ts := strings.TrimSpace(e.Time); ts != "" {
		return ts
	}
	return now().UTC().Format(time.RFC3339)
}

// FileInfo describes one file inside an identity directory as reported to
// the operator panel.
type FileInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Encrypted bool      `json:"encrypted"`
}
