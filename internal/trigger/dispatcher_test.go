package trigger_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"whispersend/internal/feedback"
	"whispersend/internal/host"
	"whispersend/internal/settings"
	"whispersend/internal/store"
	"whispersend/internal/submit"
	"whispersend/internal/testsupport"
	"whispersend/internal/trigger"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	urls    []string
	outcome submit.Outcome
}

func (f *fakeSubmitter) Submit(_ context.Context, rawURL string) submit.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, rawURL)
	return f.outcome
}

type countingPresenter struct {
	mu       sync.Mutex
	outcomes []submit.Outcome
}

func (p *countingPresenter) Present(_ context.Context, outcome submit.Outcome) feedback.Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcomes = append(p.outcomes, outcome)
	return feedback.SignalFor(outcome)
}

type failingRecorder struct{}

func (failingRecorder) RecordSubmission(context.Context, store.Submission) error {
	return errors.New("disk full")
}

func TestDispatchInvalidURLShortCircuits(t *testing.T) {
	sources := []trigger.Source{
		trigger.Toolbar{Tab: &trigger.Tab{URL: "https://example.com/watch?v=abc"}},
		trigger.Toolbar{},
		trigger.PageMenu{PageURL: "https://www.youtube.com/feed/subscriptions"},
		trigger.LinkMenu{},
	}
	for _, src := range sources {
		submitter := &fakeSubmitter{outcome: submit.Success("queued")}
		presenter := &countingPresenter{}
		d := trigger.NewDispatcher(submitter, presenter)

		result := d.Dispatch(context.Background(), src)
		if len(submitter.urls) != 0 {
			t.Fatalf("%s: expected no submission, got %v", src.Kind(), submitter.urls)
		}
		if len(presenter.outcomes) != 1 {
			t.Fatalf("%s: expected exactly one signal, got %d", src.Kind(), len(presenter.outcomes))
		}
		if result.Outcome.Kind != submit.KindRejected || result.Signal.Message != "Invalid YouTube URL." {
			t.Fatalf("%s: unexpected result %+v", src.Kind(), result)
		}
		if result.Signal.BadgeText != "ERR" {
			t.Fatalf("%s: expected ERR badge, got %q", src.Kind(), result.Signal.BadgeText)
		}
	}
}

func TestDispatchValidURLSubmitsOnce(t *testing.T) {
	tests := []struct {
		name string
		src  trigger.Source
		want string
	}{
		{"toolbar", trigger.Toolbar{Tab: &trigger.Tab{URL: "https://www.youtube.com/watch?v=abc123"}}, "https://www.youtube.com/watch?v=abc123"},
		{"page menu", trigger.PageMenu{PageURL: "https://m.youtube.com/shorts/xyz"}, "https://m.youtube.com/shorts/xyz"},
		{"page menu tab fallback", trigger.PageMenu{Tab: &trigger.Tab{URL: "https://youtu.be/abc"}}, "https://youtu.be/abc"},
		{"link menu", trigger.LinkMenu{LinkURL: "https://www.youtube.com/live/stream1"}, "https://www.youtube.com/live/stream1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &fakeSubmitter{outcome: submit.Success("queued")}
			presenter := &countingPresenter{}
			d := trigger.NewDispatcher(submitter, presenter)

			result := d.Dispatch(context.Background(), tt.src)
			if len(submitter.urls) != 1 || submitter.urls[0] != tt.want {
				t.Fatalf("expected one submission of %q, got %v", tt.want, submitter.urls)
			}
			if len(presenter.outcomes) != 1 || !result.Signal.Success {
				t.Fatalf("expected one success signal, got %+v", result)
			}
			if result.ID == "" {
				t.Fatal("expected correlation id")
			}
		})
	}
}

func TestDispatchRecordsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	submitter := &fakeSubmitter{outcome: submit.Failed("bad url", 422, submit.ErrServiceRejected)}
	d := trigger.NewDispatcher(submitter, &countingPresenter{}, trigger.WithRecorder(st))

	result := d.Dispatch(context.Background(), trigger.LinkMenu{LinkURL: "https://youtu.be/abc"})
	d.Dispatch(context.Background(), trigger.Toolbar{})

	history, err := st.RecentSubmissions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSubmissions returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected two history rows, got %d", len(history))
	}
	failed := history[1]
	if failed.ID != result.ID || failed.Trigger != "link_menu" || failed.Kind != "failed" {
		t.Fatalf("unexpected history row %+v", failed)
	}
	if failed.HTTPStatus != 422 || failed.Message != "bad url" {
		t.Fatalf("unexpected status/message %+v", failed)
	}
	if history[0].Kind != "rejected" || history[0].HTTPStatus != 0 {
		t.Fatalf("unexpected rejected row %+v", history[0])
	}
}

func TestDispatchRecorderErrorKeepsSignal(t *testing.T) {
	d := trigger.NewDispatcher(&fakeSubmitter{outcome: submit.Success("queued")}, &countingPresenter{},
		trigger.WithRecorder(failingRecorder{}))

	result := d.Dispatch(context.Background(), trigger.LinkMenu{LinkURL: "https://youtu.be/abc"})
	if !result.Signal.Success {
		t.Fatalf("expected success signal, got %+v", result.Signal)
	}
}

func TestDispatchEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"bad url"}`))
	}))
	defer server.Close()

	resolver := settings.NewResolver(settings.NewMemory(map[string]string{settings.KeyBaseURL: server.URL}), nil)
	submitter := submit.New(resolver, submit.WithHTTPClient(server.Client()))
	badge := host.NewBadge()
	tray := host.NewTray()
	presenter := feedback.NewPresenter(badge, tray)
	defer presenter.Scheduler().Stop()

	d := trigger.NewDispatcher(submitter, presenter)
	result := d.Dispatch(context.Background(), trigger.Toolbar{Tab: &trigger.Tab{URL: "https://www.youtube.com/watch?v=abc123"}})

	if result.Signal.Message != "bad url" || result.Signal.BadgeText != "ERR" {
		t.Fatalf("unexpected signal %+v", result.Signal)
	}
	if badge.Snapshot().Text != "ERR" {
		t.Fatalf("expected badge updated, got %+v", badge.Snapshot())
	}
	active := tray.Active()
	if len(active) != 1 || active[0].ID != result.Signal.NotificationID {
		t.Fatalf("expected one notification %q, got %+v", result.Signal.NotificationID, active)
	}

	presenter.Scheduler().Flush()
	if badge.Snapshot().Text != "" || len(tray.Active()) != 0 {
		t.Fatal("expected surfaces cleared after flush")
	}
}
