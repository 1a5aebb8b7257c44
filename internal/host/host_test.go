package host_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"whispersend/internal/feedback"
	"whispersend/internal/host"
)

func TestBadgeShowAndClearText(t *testing.T) {
	badge := host.NewBadge()
	ctx := context.Background()

	if err := badge.Show(ctx, feedback.BadgeState{Text: "OK", Color: "#16a34a", Title: "queued"}); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	snap := badge.Snapshot()
	if snap.Text != "OK" || snap.Color != "#16a34a" || snap.Title != "queued" {
		t.Fatalf("unexpected badge %+v", snap)
	}
	if snap.UpdatedAt.IsZero() {
		t.Fatal("expected update timestamp")
	}

	if err := badge.ClearText(ctx); err != nil {
		t.Fatalf("ClearText returned error: %v", err)
	}
	snap = badge.Snapshot()
	if snap.Text != "" {
		t.Fatalf("expected cleared text, got %q", snap.Text)
	}
	if snap.Color != "#16a34a" || snap.Title != "queued" {
		t.Fatalf("expected colour and title to survive clear, got %+v", snap)
	}
}

func TestBadgeConcurrentWritersLastWins(t *testing.T) {
	badge := host.NewBadge()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = badge.Show(context.Background(), feedback.BadgeState{Text: "ERR"})
		}()
	}
	wg.Wait()
	if got := badge.Snapshot().Text; got != "ERR" {
		t.Fatalf("expected ERR, got %q", got)
	}
}

func TestTrayTracksActiveNotifications(t *testing.T) {
	tray := host.NewTray()
	ctx := context.Background()

	_ = tray.Create(ctx, "whisper-success-1-1", feedback.Notification{Title: "Whisper Summary", Message: "queued", Success: true})
	_ = tray.Create(ctx, "whisper-error-1-2", feedback.Notification{Title: "Whisper Summary", Message: "Request failed."})

	active := tray.Active()
	if len(active) != 2 {
		t.Fatalf("expected two active notifications, got %d", len(active))
	}

	if err := tray.Clear(ctx, "whisper-success-1-1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if err := tray.Clear(ctx, "missing"); err != nil {
		t.Fatalf("Clear of unknown id returned error: %v", err)
	}
	active = tray.Active()
	if len(active) != 1 || active[0].ID != "whisper-error-1-2" {
		t.Fatalf("unexpected active notifications %+v", active)
	}
}

func TestConsolePrintsPlainLinesForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	console := host.NewConsole(&buf)

	_ = console.Create(context.Background(), "id-1", feedback.Notification{Title: "Whisper Summary", Message: "queued", Success: true})
	_ = console.Create(context.Background(), "id-2", feedback.Notification{Title: "Whisper Summary", Message: "Request timed out."})
	_ = console.Clear(context.Background(), "id-1")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI colour for a buffer, got %q", out)
	}
	want := "Whisper Summary [OK] queued\nWhisper Summary [ERR] Request timed out.\n"
	if out != want {
		t.Fatalf("unexpected console output:\n%s", out)
	}
}
