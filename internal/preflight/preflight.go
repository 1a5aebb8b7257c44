package preflight

import (
	"context"
	"net/http"
	"strings"

	"whispersend/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for cfg against the resolved service base URL.
func RunAll(ctx context.Context, cfg *config.Config, baseURL string, client *http.Client) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckService(ctx, baseURL, client),
	}

	if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		results = append(results, Result{Name: ntfyName, Passed: true, Detail: "Disabled"})
	} else {
		results = append(results, CheckNtfy(ctx, cfg.Notifications.NtfyTopic, client))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
