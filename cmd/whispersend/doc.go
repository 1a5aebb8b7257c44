// Package main hosts the whispersend CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the local daemon a browser bridge talks
// to, fires triggers against it, sends one-shot submissions without a daemon,
// and manages configuration, the stored service base address, and submission
// history. Configuration resolution and logging setup live here so
// subcommands can focus on output.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through dedicated commands or flags.
package main
