// Package app wires application dependencies for the CLI.
//
// It resolves configuration (defaults, optional YAML file, LOCKDROP_* env
// overrides), loads key material for the process role, and builds the
// concrete store, ingestion service and HTTP server, exposing them via the
// Wire struct for commands to use.
package app
