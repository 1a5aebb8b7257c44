// Package notifications delivers feedback notifications beyond the host tray.
//
// The ntfy notifier publishes to the topic configured in config.toml and
// degrades to a no-op when no topic is set. Fanout lets the daemon and CLI
// send one notification to several surfaces while the presenter still sees a
// single Notifier.
package notifications
