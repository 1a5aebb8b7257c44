// Package api defines the wire-format types for the daemon's HTTP API and
// ships the matching client used by the CLI.
//
// # Key Types
//
// TriggerResponse: the dispatch id, outcome kind, and feedback signal a
// browser bridge renders after a toolbar or menu trigger.
//
// BadgeResponse / NotificationListResponse: current host surface state so a
// bridge can mirror the badge and tray.
//
// HistoryResponse: recent submissions, newest first.
//
// DaemonStatus: runtime information (pid, bind address, database and lock
// paths, configured base URL).
//
// # Converters
//
// FromResult: trigger.Result -> TriggerResponse.
//
// FromSubmission: store.Submission -> Submission.
//
// # Design Notes
//
// DTOs use snake_case JSON tags to match the trigger payloads browser bridges
// already send. Timestamps use RFC3339 with milliseconds.
package api
