package host

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"whispersend/internal/feedback"
)

// TrayEntry is a notification still on screen.
type TrayEntry struct {
	ID string `json:"id"`
	feedback.Notification
	CreatedAt time.Time `json:"created_at"`
}

// Tray tracks notifications until they are dismissed.
type Tray struct {
	mu      sync.Mutex
	entries map[string]TrayEntry
	now     func() time.Time
}

// NewTray returns an empty tray.
func NewTray() *Tray {
	return &Tray{entries: map[string]TrayEntry{}, now: time.Now}
}

// Create shows n under id. Reusing an id replaces the earlier entry.
func (t *Tray) Create(_ context.Context, id string, n feedback.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = TrayEntry{ID: id, Notification: n, CreatedAt: t.now()}
	return nil
}

// Clear dismisses id. Unknown ids are ignored.
func (t *Tray) Clear(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
	return nil
}

// Active lists on-screen notifications, oldest first.
func (t *Tray) Active() []TrayEntry {
	t.mu.Lock()
	out := make([]TrayEntry, 0, len(t.entries))
	for _, entry := range t.entries {
		out = append(out, entry)
	}
	t.mu.Unlock()

	slices.SortFunc(out, func(a, b TrayEntry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

