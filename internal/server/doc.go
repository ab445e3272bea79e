// Package server provides lockdrop's HTTP surface.
//
// Two differently-keyed surfaces share one listener:
//
//   - POST /api accepts message envelopes authenticated by the ingest secret
//     carried in the JSON body
//   - the /panel/* read-only endpoints (list identities, list files, fetch
//     one file) are gated by a separate operator secret passed as the "key"
//     query parameter
//
// /healthz and /metrics round out the operator surface. All requests run
// under 30 second read/write deadlines; panics are recovered at the request
// boundary so the process keeps serving.
package server
