// Package feedback turns a submission outcome into a transient visible signal.
//
// Presenter writes exactly one badge update and creates exactly one
// notification per outcome, then schedules the badge text to clear after five
// seconds and the notification to be dismissed after two. The host surfaces
// are ports (Badge, Notifier) so the same presenter drives the daemon's
// in-memory tray, the terminal, or ntfy. Scheduled clears are explicit tasks
// owned by the presenter's Scheduler and can be cancelled or flushed.
//
// Concurrent presentations are not coordinated: the badge is last writer
// wins, and an earlier badge-clear may blank a newer badge's text.
package feedback
