// Package store persists whispersend state in a single SQLite database.
//
// Two tables live here: settings, a small key-value table that backs the
// settings.Store capability (the service base address), and submissions, an
// append-only record of every dispatched trigger and its outcome. The
// submission history is informational only; nothing in the dispatch path reads
// it back.
//
// Open applies embedded migrations on every start so older databases pick up
// new tables without manual intervention.
package store
