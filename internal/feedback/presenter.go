package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"whispersend/internal/logging"
	"whispersend/internal/submit"
)

const (
	// BadgeClearDelay is how long the badge text stays up.
	BadgeClearDelay = 5 * time.Second
	// NotificationDismissDelay is how long a notification stays up.
	NotificationDismissDelay = 2 * time.Second

	notificationPriority = 2
)

// Presenter shows outcomes on the host badge and notification surfaces.
type Presenter struct {
	badge     Badge
	notifier  Notifier
	scheduler *Scheduler
	logger    *slog.Logger
	now       func() time.Time
	seq       atomic.Uint64
}

// PresenterOption customizes a Presenter.
type PresenterOption func(*Presenter)

// WithScheduler replaces the default runtime-timer scheduler.
func WithScheduler(s *Scheduler) PresenterOption {
	return func(p *Presenter) {
		if s != nil {
			p.scheduler = s
		}
	}
}

// WithClock overrides the time source used for notification ids.
func WithClock(now func() time.Time) PresenterOption {
	return func(p *Presenter) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PresenterOption {
	return func(p *Presenter) {
		p.logger = logging.NewComponentLogger(logger, "feedback")
	}
}

// NewPresenter binds a presenter to the host surfaces.
func NewPresenter(badge Badge, notifier Notifier, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		badge:     badge,
		notifier:  notifier,
		scheduler: NewScheduler(nil),
		logger:    logging.NewComponentLogger(nil, "feedback"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scheduler exposes the presenter's delayed-task owner.
func (p *Presenter) Scheduler() *Scheduler {
	return p.scheduler
}

// Present shows outcome and schedules its automatic clearing. Host errors are
// logged; the returned Signal always reflects the outcome.
func (p *Presenter) Present(ctx context.Context, outcome submit.Outcome) Signal {
	signal := SignalFor(outcome)
	signal.NotificationID = p.notificationID(Category(outcome))

	// Clears fire after the trigger's context is gone.
	hostCtx := context.WithoutCancel(ctx)
	logger := logging.WithContext(ctx, p.logger)

	note := Notification{
		Title:              signal.Title,
		Message:            signal.Message,
		Success:            signal.Success,
		Priority:           notificationPriority,
		RequireInteraction: true,
	}
	if err := p.notifier.Create(hostCtx, signal.NotificationID, note); err != nil {
		logger.Warn("notification create failed",
			slog.String("notification_id", signal.NotificationID),
			logging.Error(err),
		)
	}
	id := signal.NotificationID
	p.scheduler.Schedule("dismiss "+id, NotificationDismissDelay, func() {
		if err := p.notifier.Clear(hostCtx, id); err != nil {
			logger.Warn("notification dismiss failed", slog.String("notification_id", id), logging.Error(err))
		}
	})

	state := BadgeState{Text: signal.BadgeText, Color: signal.BadgeColor, Title: signal.Message}
	if err := p.badge.Show(hostCtx, state); err != nil {
		logger.Warn("badge update failed", logging.Error(err))
	}
	p.scheduler.Schedule("clear badge", BadgeClearDelay, func() {
		if err := p.badge.ClearText(hostCtx); err != nil {
			logger.Warn("badge clear failed", logging.Error(err))
		}
	})

	logger.Debug("feedback presented",
		slog.String("badge", signal.BadgeText),
		slog.String("notification_id", id),
		slog.Bool("success", signal.Success),
	)
	return signal
}

func (p *Presenter) notificationID(category string) string {
	return fmt.Sprintf("%s-%d-%d", category, p.now().UnixMilli(), p.seq.Add(1))
}
