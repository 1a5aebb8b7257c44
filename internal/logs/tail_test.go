package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"whispersend/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whispersend.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	chunk, err := logs.Last(path, 2)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"b", "c"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}
	if chunk.Offset != 6 {
		t.Fatalf("expected offset 6, got %d", chunk.Offset)
	}
}

func TestLastWithFewerLinesThanLimit(t *testing.T) {
	path := writeLog(t, "only\n")

	chunk, err := logs.Last(path, 10)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"only"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}
}

func TestLastMissingFileIsEmpty(t *testing.T) {
	chunk, err := logs.Last(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}
	if len(chunk.Lines) != 0 || chunk.Offset != 0 {
		t.Fatalf("expected empty chunk, got %+v", chunk)
	}
}

func TestSinceLeavesPartialLine(t *testing.T) {
	path := writeLog(t, "one\r\ntwo\npart")

	chunk, err := logs.Since(path, 0)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"one", "two"}) {
		t.Fatalf("unexpected lines: %#v", chunk.Lines)
	}

	appendLog(t, path, "ial\n")
	next, err := logs.Since(path, chunk.Offset)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if !slices.Equal(next.Lines, []string{"partial"}) {
		t.Fatalf("expected completed partial line, got %#v", next.Lines)
	}
}

func TestSinceRestartsAfterTruncation(t *testing.T) {
	path := writeLog(t, "fresh\n")

	chunk, err := logs.Since(path, 4096)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if !slices.Equal(chunk.Lines, []string{"fresh"}) {
		t.Fatalf("expected reread after truncation, got %#v", chunk.Lines)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")
	start, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, start.Offset, 10*time.Millisecond, func(line string) { lines <- line })
	}()

	appendLog(t, path, "later\n")

	select {
	case line := <-lines:
		if line != "later" {
			t.Fatalf("unexpected follow line %q", line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not emit appended line")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}
