package api

import (
	"whispersend/internal/feedback"
	"whispersend/internal/trigger"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ToolbarRequest is a toolbar-button activation. An empty TabURL means no
// active tab.
type ToolbarRequest struct {
	TabURL string `json:"tab_url"`
}

// MenuRequest is a context-menu click.
type MenuRequest = trigger.MenuClick

// TriggerResponse reports a finished dispatch.
type TriggerResponse struct {
	ID         string          `json:"id"`
	Trigger    string          `json:"trigger"`
	URL        string          `json:"url"`
	Outcome    string          `json:"outcome"`
	HTTPStatus int             `json:"http_status,omitempty"`
	DurationMS int64           `json:"duration_ms"`
	Signal     feedback.Signal `json:"signal"`
}

// MenuListResponse lists context-menu registrations.
type MenuListResponse struct {
	Menus []trigger.Menu `json:"menus"`
}

// BadgeResponse is the current toolbar badge.
type BadgeResponse struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Notification is an on-screen notification.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Priority  int    `json:"priority"`
	CreatedAt string `json:"created_at,omitempty"`
}

// NotificationListResponse lists notifications not yet dismissed.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
}

// Submission is one history record.
type Submission struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Trigger    string `json:"trigger"`
	Outcome    string `json:"outcome"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"http_status,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// HistoryResponse wraps recent submissions, newest first.
type HistoryResponse struct {
	Submissions []Submission `json:"submissions"`
}

// BaseURL carries the configured service base address.
type BaseURL struct {
	BaseURL string `json:"base_url" validate:"required"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	Address      string `json:"address"`
	StartedAt    string `json:"started_at,omitempty"`
	DatabasePath string `json:"database_path"`
	LockFilePath string `json:"lock_file_path"`
	BaseURL      string `json:"base_url"`
	NtfyEnabled  bool   `json:"ntfy_enabled"`
	PendingTasks int    `json:"pending_tasks"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
