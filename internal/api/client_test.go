package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whispersend/internal/api"
)

func TestClientToolbar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/triggers/toolbar" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req api.ToolbarRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(api.TriggerResponse{ID: "1", URL: req.TabURL, Outcome: "success"})
	}))
	defer server.Close()

	client := api.NewClient(strings.TrimPrefix(server.URL, "http://"), server.Client())
	resp, err := client.Toolbar(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Toolbar returned error: %v", err)
	}
	if resp.URL != "https://youtu.be/abc" || resp.Outcome != "success" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestClientDecodesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unknown menu item"})
	}))
	defer server.Close()

	_, err := api.NewClient(server.URL, server.Client()).Menu(context.Background(), api.MenuRequest{MenuItemID: "nope"})
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadRequest || statusErr.Message != "unknown menu item" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestClientReportsUnavailableDaemon(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	_, err := api.NewClient(addr, nil).Status(context.Background())
	if !errors.Is(err, api.ErrDaemonUnavailable) {
		t.Fatalf("expected ErrDaemonUnavailable, got %v", err)
	}
}

func TestClientHistoryLimit(t *testing.T) {
	queries := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(api.HistoryResponse{})
	}))
	defer server.Close()

	if _, err := api.NewClient(server.URL, server.Client()).History(context.Background(), 5); err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if gotQuery := <-queries; gotQuery != "limit=5" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}
