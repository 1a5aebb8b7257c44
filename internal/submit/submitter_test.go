package submit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"whispersend/internal/settings"
	"whispersend/internal/submit"
)

const validURL = "https://www.youtube.com/watch?v=abc123"

type staticResolver string

func (s staticResolver) ResolveBaseURL(context.Context) string { return string(s) }

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSubmitSendsTaskRequest(t *testing.T) {
	bodies := make(chan map[string]string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/tasks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		bodies <- body
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"queued","task_id":"t-1"}`))
	}))
	defer server.Close()

	store := settings.NewMemory(map[string]string{settings.KeyBaseURL: server.URL + "/"})
	submitter := submit.New(settings.NewResolver(store, nil), submit.WithHTTPClient(server.Client()))

	outcome := submitter.Submit(context.Background(), validURL)
	if outcome.Kind != submit.KindSuccess || outcome.Message != "queued" {
		t.Fatalf("expected Success(queued), got %v", outcome)
	}
	if outcome.Err != nil {
		t.Fatalf("expected nil error on success, got %v", outcome.Err)
	}
	gotBody := <-bodies
	if gotBody["url"] != validURL || gotBody["db_type"] != "sqlite" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestSubmitClassifiesResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind submit.Kind
		wantMsg  string
		wantErr  error
	}{
		{"created with message", 201, `{"message":"queued"}`, submit.KindSuccess, "queued", nil},
		{"created without body", 201, ``, submit.KindSuccess, "Task queued.", nil},
		{"created with malformed body", 201, `<html>ok</html>`, submit.KindSuccess, "Task queued.", nil},
		{"created with array body", 201, `["x"]`, submit.KindSuccess, "Task queued.", nil},
		{"ok is not created", 200, `{"message":"fine"}`, submit.KindFailed, "fine", submit.ErrServiceRejected},
		{"unprocessable detail", 422, `{"detail":"bad url"}`, submit.KindFailed, "bad url", submit.ErrServiceRejected},
		{"detail wins over message", 400, `{"detail":"d","message":"m"}`, submit.KindFailed, "d", submit.ErrServiceRejected},
		{"message fallback", 409, `{"message":"duplicate"}`, submit.KindFailed, "duplicate", submit.ErrServiceRejected},
		{"status fallback", 500, `not json`, submit.KindFailed, "Request failed (500).", submit.ErrServiceRejected},
		{"empty detail falls through", 503, `{"detail":""}`, submit.KindFailed, "Request failed (503).", submit.ErrServiceRejected},
		{
			"validation list",
			422,
			`{"detail":[{"loc":["body","url"],"msg":"URL is required."},{"msg":"db_type invalid"}]}`,
			submit.KindFailed,
			"URL is required.; db_type invalid",
			submit.ErrServiceRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := doerFunc(func(*http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})
			submitter := submit.New(staticResolver("http://svc"), submit.WithHTTPClient(client))

			outcome := submitter.Submit(context.Background(), validURL)
			if outcome.Kind != tt.wantKind || outcome.Message != tt.wantMsg {
				t.Fatalf("got %v, want %s(%q)", outcome, tt.wantKind, tt.wantMsg)
			}
			if tt.wantErr == nil && outcome.Err != nil {
				t.Fatalf("expected nil error, got %v", outcome.Err)
			}
			if tt.wantErr != nil && !errors.Is(outcome.Err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, outcome.Err)
			}
			if outcome.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, outcome.Status)
			}
		})
	}
}

func TestSubmitTimesOutAndAbortsOnce(t *testing.T) {
	var calls, aborts atomic.Int32
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		<-req.Context().Done()
		aborts.Add(1)
		return nil, req.Context().Err()
	})
	submitter := submit.New(staticResolver("http://svc"),
		submit.WithHTTPClient(client),
		submit.WithTimeout(20*time.Millisecond),
	)

	outcome := submitter.Submit(context.Background(), validURL)
	if outcome.Kind != submit.KindTimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome)
	}
	if outcome.Message != "Request timed out." {
		t.Fatalf("unexpected timeout message %q", outcome.Message)
	}
	if !errors.Is(outcome.Err, submit.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", outcome.Err)
	}
	if calls.Load() != 1 || aborts.Load() != 1 {
		t.Fatalf("expected one request aborted once, calls=%d aborts=%d", calls.Load(), aborts.Load())
	}
}

func TestSubmitTimesOutAgainstSlowServer(t *testing.T) {
	aborted := make(chan struct{}, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only watches for the client going away once the body is consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
			aborted <- struct{}{}
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer server.Close()

	submitter := submit.New(staticResolver(server.URL),
		submit.WithHTTPClient(server.Client()),
		submit.WithTimeout(50*time.Millisecond),
	)
	outcome := submitter.Submit(context.Background(), validURL)
	if outcome.Kind != submit.KindTimedOut {
		t.Fatalf("expected TimedOut, got %v", outcome)
	}

	select {
	case <-aborted:
	case <-time.After(2 * time.Second):
		t.Fatal("expected server to observe the aborted request")
	}
	select {
	case <-aborted:
		t.Fatal("expected exactly one aborted request")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitNetworkFailure(t *testing.T) {
	client := doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	})
	submitter := submit.New(staticResolver("http://svc"), submit.WithHTTPClient(client))

	outcome := submitter.Submit(context.Background(), validURL)
	if outcome.Kind != submit.KindFailed || outcome.Message != "Request failed." {
		t.Fatalf("expected Failed(Request failed.), got %v", outcome)
	}
	if !errors.Is(outcome.Err, submit.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", outcome.Err)
	}
}

func TestSubmitConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	outcome := submit.New(staticResolver(base)).Submit(context.Background(), validURL)
	if outcome.Kind != submit.KindFailed || !errors.Is(outcome.Err, submit.ErrNetwork) {
		t.Fatalf("expected network failure, got %v (%v)", outcome, outcome.Err)
	}
}

func TestSubmitParentCancellationIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		cancel()
		<-req.Context().Done()
		return nil, req.Context().Err()
	})
	submitter := submit.New(staticResolver("http://svc"), submit.WithHTTPClient(client))

	outcome := submitter.Submit(ctx, validURL)
	if outcome.Kind != submit.KindFailed || !errors.Is(outcome.Err, submit.ErrNetwork) {
		t.Fatalf("expected network failure on caller cancel, got %v", outcome)
	}
}

func TestSubmitRejectsInvalidURLWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	client := doerFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(201, `{}`), nil
	})
	submitter := submit.New(staticResolver("http://svc"), submit.WithHTTPClient(client))

	outcome := submitter.Submit(context.Background(), "https://example.com/watch?v=abc")
	if outcome.Kind != submit.KindRejected || outcome.Message != "Invalid YouTube URL." {
		t.Fatalf("expected Rejected, got %v", outcome)
	}
	if !errors.Is(outcome.Err, submit.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", outcome.Err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no outbound request, got %d", calls.Load())
	}
}

func TestSubmitUsesDefaultBaseURL(t *testing.T) {
	var gotURL string
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(201, `{}`), nil
	})
	submitter := submit.New(settings.NewResolver(settings.NewMemory(nil), nil), submit.WithHTTPClient(client))

	if outcome := submitter.Submit(context.Background(), "https://youtu.be/abc"); !outcome.OK() {
		t.Fatalf("expected success, got %v", outcome)
	}
	if gotURL != "http://localhost:8080/tasks" {
		t.Fatalf("unexpected endpoint %q", gotURL)
	}
}
