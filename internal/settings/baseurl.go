package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"whispersend/internal/logging"
)

const (
	// KeyBaseURL is the settings key holding the service base address.
	KeyBaseURL = "apiBaseUrl"
	// DefaultBaseURL is used when no address has been stored.
	DefaultBaseURL = "http://localhost:8080"
)

// ErrInvalidBaseURL marks addresses rejected by ValidateBaseURL.
var ErrInvalidBaseURL = errors.New("invalid base url")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func urlValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateBaseURL requires an absolute http or https URL.
func ValidateBaseURL(value string) error {
	value = strings.TrimSpace(value)
	if err := urlValidator().Var(value, "required,url"); err != nil {
		return fmt.Errorf("%w: %q is not a URL", ErrInvalidBaseURL, value)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	switch parsed.Scheme {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, parsed.Scheme)
	}
}

// NormalizeBaseURL applies the default and strips trailing slashes.
func NormalizeBaseURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultBaseURL
	}
	trimmed := strings.TrimRight(value, "/")
	if trimmed == "" {
		return DefaultBaseURL
	}
	return trimmed
}

// Resolver reads and writes the service base address.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver binds a resolver to store.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logging.NewComponentLogger(logger, "settings")}
}

// ResolveBaseURL returns the configured base address without trailing
// slashes, or DefaultBaseURL when none is stored. Store failures are logged
// and treated as absence.
func (r *Resolver) ResolveBaseURL(ctx context.Context) string {
	if r == nil || r.store == nil {
		return DefaultBaseURL
	}
	value, err := r.store.Get(ctx, KeyBaseURL, DefaultBaseURL)
	if err != nil {
		logging.WithContext(ctx, r.logger).Warn("settings read failed; using default base url",
			logging.Error(err),
			slog.String("default", DefaultBaseURL),
		)
		return DefaultBaseURL
	}
	return NormalizeBaseURL(value)
}

// SaveBaseURL validates and persists a user-supplied base address. The value
// is stored trimmed but otherwise as entered.
func (r *Resolver) SaveBaseURL(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if err := ValidateBaseURL(value); err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyBaseURL, value); err != nil {
		return fmt.Errorf("save base url: %w", err)
	}
	logging.WithContext(ctx, r.logger).Info("base url saved", slog.String("base_url", value))
	return nil
}
