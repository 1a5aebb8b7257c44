package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"whispersend/internal/config"
	"whispersend/internal/feedback"
	"whispersend/internal/logging"
)

const userAgent = "whispersend/0.1.0"

// NewService builds the ntfy notifier when a topic is configured and a no-op
// notifier otherwise.
func NewService(cfg *config.Config) feedback.Notifier {
	if cfg == nil {
		return Noop{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return Noop{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewNtfy(topic, &http.Client{Timeout: timeout})
}

// Ntfy publishes notifications to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
}

// NewNtfy returns a notifier posting to endpoint.
func NewNtfy(endpoint string, client *http.Client) *Ntfy {
	if client == nil {
		client = http.DefaultClient
	}
	return &Ntfy{endpoint: endpoint, client: client}
}

// Create publishes n. The id travels as a tag so subscribers can correlate.
func (n *Ntfy) Create(ctx context.Context, id string, note feedback.Notification) error {
	status := "failure"
	if note.Success {
		status = "success"
	}
	tags := []string{"whispersend", status}
	if id != "" {
		tags = append(tags, id)
	}
	return n.send(ctx, note.Title, note.Message, tags, ntfyPriority(note))
}

// Clear is a no-op: published ntfy messages cannot be retracted.
func (n *Ntfy) Clear(context.Context, string) error {
	return nil
}

// Test publishes a low-priority test message.
func (n *Ntfy) Test(ctx context.Context) error {
	return n.send(ctx, feedback.NotificationTitle+" - Test", "Notification system test", []string{"whispersend", "test"}, "low")
}

// ntfy priorities run 1..5 with 3 as default; failures that demand
// interaction go out as high.
func ntfyPriority(note feedback.Notification) string {
	if note.RequireInteraction && !note.Success {
		return "high"
	}
	return ""
}

func (n *Ntfy) send(ctx context.Context, title, message string, tags []string, priority string) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	if len(tags) > 0 {
		req.Header.Set("Tags", strings.Join(tags, ","))
	}
	if priority != "" && priority != "default" {
		req.Header.Set("Priority", priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Noop discards notifications.
type Noop struct{}

func (Noop) Create(context.Context, string, feedback.Notification) error { return nil }
func (Noop) Clear(context.Context, string) error                         { return nil }

// Fanout sends each call to every notifier. All notifiers are attempted; the
// errors are joined.
type Fanout struct {
	notifiers []feedback.Notifier
	logger    *slog.Logger
}

// NewFanout drops nil entries and Noop notifiers.
func NewFanout(logger *slog.Logger, notifiers ...feedback.Notifier) *Fanout {
	f := &Fanout{logger: logging.NewComponentLogger(logger, "notifications")}
	for _, n := range notifiers {
		if n == nil {
			continue
		}
		if _, ok := n.(Noop); ok {
			continue
		}
		f.notifiers = append(f.notifiers, n)
	}
	return f
}

// Len reports how many notifiers are attached.
func (f *Fanout) Len() int {
	return len(f.notifiers)
}

func (f *Fanout) Create(ctx context.Context, id string, note feedback.Notification) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Create(ctx, id, note); err != nil {
			f.logger.Debug("notifier create failed", slog.String("notifier", fmt.Sprintf("%T", n)), logging.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Clear(ctx context.Context, id string) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Clear(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
