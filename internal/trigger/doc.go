// Package trigger turns browser entry points into submissions.
//
// A Source is one user action: the toolbar button, the "send page" context
// menu, or the "send link" context menu. Each supplies a candidate URL. The
// Dispatcher runs every source through the same pipeline (validate, submit,
// present) and guarantees exactly one feedback signal per dispatch.
//
// Menus describes the context-menu registrations, including the URL patterns
// that scope them to video pages and video links.
package trigger
