// Package logs reads the daemon log file for the CLI.
//
// Last returns the final N lines with bounded memory and the byte offset the
// caller resumes from. Follow polls from that offset and hands new lines to a
// callback until the context ends, which backs `whispersend logs --follow`.
package logs
