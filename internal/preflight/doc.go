// Package preflight provides readiness checks for the paths and services
// whispersend depends on.
//
// `whispersend doctor` runs RunAll and prints one row per check. The Whisper
// Summary service check only proves the base address answers HTTP; it does not
// submit a task.
package preflight
