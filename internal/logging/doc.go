// Package logging assembles structured slog loggers for whispersend.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stdout plus the daemon log file). Context helpers attach the dispatch
// correlation id so every line emitted while handling one trigger can be
// grepped together. A no-op logger is provided for tests and wiring code.
package logging
