package testsupport

import (
	"path/filepath"
	"testing"

	"whispersend/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Notifications.NtfyTopic = ""
	cfg.Notifications.Console = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithNtfyTopic points notifications at the given ntfy endpoint.
func WithNtfyTopic(topic string) ConfigOption {
	return func(c *config.Config) {
		c.Notifications.NtfyTopic = topic
	}
}
