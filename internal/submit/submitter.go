package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"whispersend/internal/logging"
	"whispersend/internal/youtube"
)

const (
	// DefaultTimeout bounds a single submission from request start to body read.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
	userAgent        = "whispersend/0.1.0"
)

var errSubmitDeadline = errors.New("submission deadline exceeded")

// HTTPDoer describes the HTTP client used to reach the service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseURLResolver supplies the service base address without a trailing slash.
type BaseURLResolver interface {
	ResolveBaseURL(ctx context.Context) string
}

// Submitter posts task submissions to the summarization service.
type Submitter struct {
	resolver BaseURLResolver
	client   HTTPDoer
	timeout  time.Duration
	logger   *slog.Logger
}

// Option customizes a Submitter.
type Option func(*Submitter)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(s *Submitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout overrides DefaultTimeout. Intended for tests.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Submitter) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logging.NewComponentLogger(logger, "submitter")
	}
}

// New constructs a Submitter that resolves the base address through resolver.
func New(resolver BaseURLResolver, opts ...Option) *Submitter {
	s := &Submitter{
		resolver: resolver,
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		logger:   logging.NewComponentLogger(nil, "submitter"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit sends rawURL to the service and classifies the result. It never
// returns without an Outcome and never retries.
//
// rawURL is re-validated here even though dispatchers validate first, so a
// caller that skips validation still cannot reach the network with it.
func (s *Submitter) Submit(ctx context.Context, rawURL string) Outcome {
	logger := logging.WithContext(ctx, s.logger)

	if !youtube.IsAcceptable(rawURL) {
		logger.Debug("submission refused before dispatch", slog.String("url", rawURL))
		return Rejected(MsgInvalidURL)
	}

	endpoint := s.resolver.ResolveBaseURL(ctx) + TasksPath
	body, err := json.Marshal(NewRequest(rawURL))
	if err != nil {
		return Failed(MsgRequestFailed, 0, fmt.Errorf("%w: encode request: %w", ErrNetwork, err))
	}

	reqCtx, cancel := context.WithTimeoutCause(ctx, s.timeout, errSubmitDeadline)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		logger.Warn("build task request failed", slog.String("endpoint", endpoint), logging.Error(err))
		return Failed(MsgRequestFailed, 0, fmt.Errorf("%w: build request: %w", ErrNetwork, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(context.Cause(reqCtx), errSubmitDeadline) {
			logger.Warn("task request timed out",
				slog.String("endpoint", endpoint),
				slog.Duration("timeout", s.timeout),
			)
			return TimedOut()
		}
		logger.Warn("task request failed", slog.String("endpoint", endpoint), logging.Error(err))
		return Failed(MsgRequestFailed, 0, fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	defer resp.Body.Close()

	payload := decodeBody(resp.Body)
	outcome := classify(resp.StatusCode, payload)
	logger.Info("task request completed",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.String("outcome", string(outcome.Kind)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return outcome
}

func classify(status int, payload responseBody) Outcome {
	if status == http.StatusCreated {
		message := payload.text("message")
		if message == "" {
			message = MsgTaskQueued
		}
		return Success(message)
	}

	detail := payload.text("detail")
	if detail == "" {
		detail = payload.text("message")
	}
	if detail == "" {
		detail = fmt.Sprintf("Request failed (%d).", status)
	}
	return Failed(detail, status, fmt.Errorf("%w: status %d", ErrServiceRejected, status))
}

type responseBody map[string]any

// decodeBody parses a JSON object, degrading to an empty body on read or
// parse failure.
func decodeBody(r io.Reader) responseBody {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBytes))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return responseBody{}
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return responseBody{}
	}
	return payload
}

func (b responseBody) text(key string) string {
	return textValue(b[key])
}

// textValue renders a JSON value for display. Validation error lists in the
// [{"msg": ...}] shape collapse to their messages.
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if !val {
			return ""
		}
	case float64:
		if val == 0 {
			return ""
		}
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if obj, ok := item.(map[string]any); ok {
				if msg := textValue(obj["msg"]); msg != "" {
					parts = append(parts, msg)
					continue
				}
			}
			if s := textValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(encoded)
}
