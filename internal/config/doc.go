// Package config loads, normalizes, and validates whispersend configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WHISPERSEND_NTFY_TOPIC. The Config type covers the local runtime only: data
// and log directories, the daemon bind address, logging, and notification
// transports. The summarization service base address is not part of this file;
// it lives in the persistent settings store so the browser-facing settings
// surface can change it at runtime.
package config
