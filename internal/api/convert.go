package api

import (
	"time"

	"whispersend/internal/host"
	"whispersend/internal/store"
	"whispersend/internal/trigger"
)

// FromResult converts a dispatch result to its API representation.
func FromResult(result trigger.Result) TriggerResponse {
	return TriggerResponse{
		ID:         result.ID,
		Trigger:    string(result.Trigger),
		URL:        result.URL,
		Outcome:    string(result.Outcome.Kind),
		HTTPStatus: result.Outcome.Status,
		DurationMS: result.Duration.Milliseconds(),
		Signal:     result.Signal,
	}
}

// FromSubmission converts a history record.
func FromSubmission(sub store.Submission) Submission {
	return Submission{
		ID:         sub.ID,
		URL:        sub.URL,
		Trigger:    sub.Trigger,
		Outcome:    sub.Kind,
		Message:    sub.Message,
		HTTPStatus: sub.HTTPStatus,
		DurationMS: sub.Duration.Milliseconds(),
		CreatedAt:  formatTime(sub.CreatedAt),
	}
}

// FromSubmissions converts a history page, preserving order.
func FromSubmissions(subs []store.Submission) []Submission {
	out := make([]Submission, 0, len(subs))
	for _, sub := range subs {
		out = append(out, FromSubmission(sub))
	}
	return out
}

// FromBadge converts a badge snapshot.
func FromBadge(snap host.BadgeSnapshot) BadgeResponse {
	return BadgeResponse{
		Text:      snap.Text,
		Color:     snap.Color,
		Title:     snap.Title,
		UpdatedAt: formatTime(snap.UpdatedAt),
	}
}

// FromTray converts active tray entries.
func FromTray(entries []host.TrayEntry) []Notification {
	out := make([]Notification, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Notification{
			ID:        entry.ID,
			Title:     entry.Title,
			Message:   entry.Message,
			Success:   entry.Success,
			Priority:  entry.Priority,
			CreatedAt: formatTime(entry.CreatedAt),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
