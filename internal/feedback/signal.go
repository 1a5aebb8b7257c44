package feedback

import (
	"errors"

	"whispersend/internal/submit"
)

const (
	NotificationTitle = "Whisper Summary"

	BadgeTextSuccess = "OK"
	BadgeTextFailure = "ERR"

	ColorSuccess = "#16a34a"
	ColorFailure = "#dc2626"

	CategorySuccess    = "whisper-success"
	CategoryInvalidURL = "whisper-invalid-url"
	CategoryFailure    = "whisper-failure"
	CategoryError      = "whisper-error"
)

// Signal is the visible feedback derived from one outcome.
type Signal struct {
	BadgeText      string `json:"badge_text"`
	BadgeColor     string `json:"badge_color"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Success        bool   `json:"success"`
	NotificationID string `json:"notification_id"`
}

// SignalFor maps an outcome to its badge, colour, and message. The
// notification id is assigned by the presenter.
func SignalFor(outcome submit.Outcome) Signal {
	if outcome.Kind == submit.KindSuccess {
		return Signal{
			BadgeText:  BadgeTextSuccess,
			BadgeColor: ColorSuccess,
			Title:      NotificationTitle,
			Message:    outcome.Message,
			Success:    true,
		}
	}
	message := outcome.Message
	if message == "" {
		switch outcome.Kind {
		case submit.KindRejected:
			message = submit.MsgInvalidURL
		case submit.KindTimedOut:
			message = submit.MsgTimedOut
		default:
			message = submit.MsgRequestFailed
		}
	}
	return Signal{
		BadgeText:  BadgeTextFailure,
		BadgeColor: ColorFailure,
		Title:      NotificationTitle,
		Message:    message,
	}
}

// Category returns the notification category tag for an outcome.
func Category(outcome submit.Outcome) string {
	switch outcome.Kind {
	case submit.KindSuccess:
		return CategorySuccess
	case submit.KindRejected:
		return CategoryInvalidURL
	case submit.KindFailed:
		if errors.Is(outcome.Err, submit.ErrServiceRejected) {
			return CategoryFailure
		}
		return CategoryError
	default:
		return CategoryError
	}
}
