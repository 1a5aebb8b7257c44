package host

import (
	"context"
	"sync"
	"time"

	"whispersend/internal/feedback"
)

// BadgeSnapshot is the badge as last written.
type BadgeSnapshot struct {
	feedback.BadgeState
	UpdatedAt time.Time `json:"updated_at"`
}

// Badge is an in-memory toolbar badge.
type Badge struct {
	mu    sync.Mutex
	state feedback.BadgeState
	at    time.Time
	now   func() time.Time
}

// NewBadge returns an empty badge.
func NewBadge() *Badge {
	return &Badge{now: time.Now}
}

// Show replaces text, colour, and title.
func (b *Badge) Show(_ context.Context, state feedback.BadgeState) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
	b.at = b.now()
	return nil
}

// ClearText blanks the badge text. Colour and title are left as they were,
// matching how browsers treat an empty badge.
func (b *Badge) ClearText(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Text = ""
	b.at = b.now()
	return nil
}

// Snapshot returns the current badge.
func (b *Badge) Snapshot() BadgeSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BadgeSnapshot{BadgeState: b.state, UpdatedAt: b.at}
}
