// Package settings resolves the summarization service base address.
//
// The address lives in a key-value Store (SQLite in production, in-memory in
// tests and one-shot runs). Resolver falls back to the well-known local
// address when nothing is stored and strips trailing slashes so callers can
// append endpoint paths directly. ValidateBaseURL is the predicate the
// settings surface applies before persisting a user-supplied address.
package settings
