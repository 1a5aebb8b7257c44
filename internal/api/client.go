package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrDaemonUnavailable reports that nothing answered at the daemon address.
var ErrDaemonUnavailable = errors.New("daemon unavailable")

// StatusError is a non-2xx reply from the daemon.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("daemon returned %d", e.Code)
	}
	return fmt.Sprintf("daemon returned %d: %s", e.Code, e.Message)
}

// Client calls the daemon HTTP API.
type Client struct {
	base string
	http *http.Client
}

// NewClient targets the daemon listening on bind (host:port or a full URL).
// Calls use a short timeout so CLI commands fail fast when the daemon is
// offline; trigger calls allow for the full submission timeout.
func NewClient(bind string, httpClient *http.Client) *Client {
	base := strings.TrimRight(strings.TrimSpace(bind), "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: base, http: httpClient}
}

// BaseURL returns the daemon root URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Toolbar fires a toolbar trigger.
func (c *Client) Toolbar(ctx context.Context, tabURL string) (*TriggerResponse, error) {
	var resp TriggerResponse
	if err := c.do(ctx, http.MethodPost, "/api/triggers/toolbar", ToolbarRequest{TabURL: tabURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Menu fires a context-menu trigger.
func (c *Client) Menu(ctx context.Context, req MenuRequest) (*TriggerResponse, error) {
	var resp TriggerResponse
	if err := c.do(ctx, http.MethodPost, "/api/triggers/menu", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Menus lists context-menu registrations.
func (c *Client) Menus(ctx context.Context) (*MenuListResponse, error) {
	var resp MenuListResponse
	if err := c.do(ctx, http.MethodGet, "/api/menus", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Badge returns the current badge.
func (c *Client) Badge(ctx context.Context) (*BadgeResponse, error) {
	var resp BadgeResponse
	if err := c.do(ctx, http.MethodGet, "/api/badge", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Notifications lists notifications still on screen.
func (c *Client) Notifications(ctx context.Context) (*NotificationListResponse, error) {
	var resp NotificationListResponse
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns up to limit recent submissions; zero uses the daemon default.
func (c *Client) History(ctx context.Context, limit int) (*HistoryResponse, error) {
	path := "/api/history"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var resp HistoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves daemon runtime information.
func (c *Client) Status(ctx context.Context) (*DaemonStatus, error) {
	var resp DaemonStatus
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBaseURL returns the configured service base address.
func (c *Client) GetBaseURL(ctx context.Context) (string, error) {
	var resp BaseURL
	if err := c.do(ctx, http.MethodGet, "/api/settings/base-url", nil, &resp); err != nil {
		return "", err
	}
	return resp.BaseURL, nil
}

// SetBaseURL stores a new service base address and returns it normalized.
func (c *Client) SetBaseURL(ctx context.Context, value string) (string, error) {
	var resp BaseURL
	if err := c.do(ctx, http.MethodPut, "/api/settings/base-url", BaseURL{BaseURL: value}, &resp); err != nil {
		return "", err
	}
	return resp.BaseURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w at %s: %w", ErrDaemonUnavailable, c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
