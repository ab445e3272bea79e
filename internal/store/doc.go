// Package store provides file-based persistence for lockdrop's per-identity
// data.
//
// Each identity seen by the server owns one directory under the data root,
// created lazily on first use. A directory holds at most five well-known
// files: the four category files (history.txt, cookies.txt, bookmarks.txt,
// downloads.txt), each carrying the latest encrypted token for its category,
// and logs.txt, an append-only plaintext audit trail.
//
// Category writes go through a temp-file-and-rename so racing requests for
// the same identity resolve to last-write-wins with no torn files. Log
// appends are serialised per identity; different identities never contend.
package store
