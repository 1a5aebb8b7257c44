// Package daemon coordinates the long-running whispersend process that backs a
// browser bridge.
//
// It wires configuration, the SQLite store, the submission pipeline, and the
// in-memory host surfaces into a single lifecycle with flock-based locking to
// prevent multiple instances. The HTTP API (chi, CORS limited to extension
// origins) accepts toolbar and menu triggers and exposes badge, notification,
// history, and settings state.
//
// Keep orchestration here: validation, submission, and feedback rules live in
// their own packages while the daemon focuses on startup, shutdown, and
// transport.
package daemon
