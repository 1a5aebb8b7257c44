package feedback

import "context"

// BadgeState is what the toolbar badge displays.
type BadgeState struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Title string `json:"title"`
}

// Badge is the host's toolbar badge.
type Badge interface {
	Show(ctx context.Context, state BadgeState) error
	ClearText(ctx context.Context) error
}

// Notification is a dismissible host notification.
type Notification struct {
	Title              string `json:"title"`
	Message            string `json:"message"`
	Success            bool   `json:"success"`
	Priority           int    `json:"priority"`
	RequireInteraction bool   `json:"require_interaction"`
}

// Notifier creates and dismisses host notifications by id.
type Notifier interface {
	Create(ctx context.Context, id string, n Notification) error
	Clear(ctx context.Context, id string) error
}
