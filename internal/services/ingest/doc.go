// Package ingest implements the persistence policy applied to each
// authenticated envelope.
//
// The policy is state-free dispatch on the declared message type:
//
//   - history, cookies, bookmarks, downloads: the Data payload is compacted
//     to canonical JSON, chunk-encrypted with the server's public key, and
//     overwrites the matching category file
//   - opened, input: a structured plaintext record (timestamp, type, field,
//     message) is appended to the identity's log
//   - geolocation: like the above, but carrying the serialised Data payload
//   - anything else: report-only; nothing persists, the request still
//     succeeds
//
// The service holds the public key only. Decryption never happens in the
// server process.
package ingest
