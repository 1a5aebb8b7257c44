package settings_test

import (
	"context"
	"errors"
	"testing"

	"whispersend/internal/logging"
	"whispersend/internal/settings"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestResolveBaseURLDefaultsWhenAbsent(t *testing.T) {
	resolver := settings.NewResolver(settings.NewMemory(nil), logging.NewNop())
	got := resolver.ResolveBaseURL(context.Background())
	if got != "http://localhost:8080" {
		t.Fatalf("expected default base url, got %q", got)
	}
}

func TestResolveBaseURLStripsTrailingSlashes(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"http://host/", "http://host"},
		{"http://host///", "http://host"},
		{"https://api.example.com/v1/", "https://api.example.com/v1"},
		{"", "http://localhost:8080"},
		{"   ", "http://localhost:8080"},
	}
	for _, tt := range tests {
		store := settings.NewMemory(map[string]string{settings.KeyBaseURL: tt.stored})
		got := settings.NewResolver(store, nil).ResolveBaseURL(context.Background())
		if got != tt.want {
			t.Errorf("stored %q: got %q want %q", tt.stored, got, tt.want)
		}
	}
}

func TestResolveBaseURLFallsBackOnStoreError(t *testing.T) {
	got := settings.NewResolver(failingStore{}, nil).ResolveBaseURL(context.Background())
	if got != settings.DefaultBaseURL {
		t.Fatalf("expected default on store error, got %q", got)
	}
}

func TestValidateBaseURL(t *testing.T) {
	valid := []string{"http://localhost:8080", "https://summary.example.com/", " http://10.0.0.2:9000 "}
	for _, v := range valid {
		if err := settings.ValidateBaseURL(v); err != nil {
			t.Errorf("ValidateBaseURL(%q) returned %v", v, err)
		}
	}
	invalid := []string{"", "localhost:8080", "ftp://files.example.com", "not a url"}
	for _, v := range invalid {
		err := settings.ValidateBaseURL(v)
		if err == nil {
			t.Errorf("ValidateBaseURL(%q) accepted invalid value", v)
			continue
		}
		if !errors.Is(err, settings.ErrInvalidBaseURL) {
			t.Errorf("ValidateBaseURL(%q) returned unmarked error %v", v, err)
		}
	}
}

func TestSaveBaseURLPersistsValidValues(t *testing.T) {
	store := settings.NewMemory(nil)
	resolver := settings.NewResolver(store, nil)
	ctx := context.Background()

	if err := resolver.SaveBaseURL(ctx, "  https://summary.example.com/  "); err != nil {
		t.Fatalf("SaveBaseURL returned error: %v", err)
	}
	stored, _ := store.Get(ctx, settings.KeyBaseURL, "")
	if stored != "https://summary.example.com/" {
		t.Fatalf("unexpected stored value %q", stored)
	}
	if got := resolver.ResolveBaseURL(ctx); got != "https://summary.example.com" {
		t.Fatalf("unexpected resolved value %q", got)
	}

	if err := resolver.SaveBaseURL(ctx, "ftp://nope"); err == nil {
		t.Fatal("expected invalid url to be rejected")
	}
	if got := resolver.ResolveBaseURL(ctx); got != "https://summary.example.com" {
		t.Fatalf("rejected value must not be persisted, got %q", got)
	}
}
