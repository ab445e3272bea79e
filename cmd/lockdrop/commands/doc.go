// Package commands defines the lockdrop CLI.
//
// One binary carries both roles: "serve" runs the always-on ingestion daemon
// (public key only), while "keygen", "decrypt" and "fingerprint" are the
// operator-side offline tools that ever touch private key material.
package commands
