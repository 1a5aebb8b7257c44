// Package host provides in-process renditions of the browser surfaces that
// display feedback: the toolbar badge, the notification tray, and a console
// printer for terminal use.
//
// The daemon exposes Badge and Tray state over its HTTP API so a browser
// bridge can mirror them. All types are safe for concurrent use; concurrent
// writers are last-writer-wins.
package host
