package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"whispersend/internal/config"
	"whispersend/internal/feedback"
	"whispersend/internal/host"
	"whispersend/internal/logging"
	"whispersend/internal/notifications"
	"whispersend/internal/settings"
	"whispersend/internal/store"
	"whispersend/internal/submit"
	"whispersend/internal/trigger"
)

// Daemon owns the submission pipeline and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store

	resolver   *settings.Resolver
	badge      *host.Badge
	tray       *host.Tray
	presenter  *feedback.Presenter
	dispatcher *trigger.Dispatcher
	ntfy       bool

	lockPath string
	lock     *flock.Flock
	api      *apiServer

	running   atomic.Bool
	startedAt atomic.Pointer[time.Time]
	cancel    context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Address      string
	StartedAt    time.Time
	DatabasePath string
	LockFilePath string
	BaseURL      string
	NtfyEnabled  bool
	PendingTasks int
}

type options struct {
	httpClient submit.HTTPDoer
	afterFunc  feedback.AfterFunc
	console    io.Writer
}

// Option customizes daemon wiring.
type Option func(*options)

// WithHTTPClient replaces the client used for task submissions.
func WithHTTPClient(client submit.HTTPDoer) Option {
	return func(o *options) { o.httpClient = client }
}

// WithAfterFunc replaces the timer used for badge and notification clears.
func WithAfterFunc(after feedback.AfterFunc) Option {
	return func(o *options) { o.afterFunc = after }
}

// WithConsole sets where console notifications are printed when enabled.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || st == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, and logger")
	}
	o := options{console: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	badge := host.NewBadge()
	tray := host.NewTray()
	ntfy := notifications.NewService(cfg)
	_, ntfyDisabled := ntfy.(notifications.Noop)

	surfaces := []feedback.Notifier{tray, ntfy}
	if cfg.Notifications.Console && o.console != nil {
		surfaces = append(surfaces, host.NewConsole(o.console))
	}
	notifier := notifications.NewFanout(logger, surfaces...)

	resolver := settings.NewResolver(st, logger)
	submitOpts := []submit.Option{submit.WithLogger(logger)}
	if o.httpClient != nil {
		submitOpts = append(submitOpts, submit.WithHTTPClient(o.httpClient))
	}
	submitter := submit.New(resolver, submitOpts...)
	presenter := feedback.NewPresenter(badge, notifier,
		feedback.WithScheduler(feedback.NewScheduler(o.afterFunc)),
		feedback.WithLogger(logger),
	)
	dispatcher := trigger.NewDispatcher(submitter, presenter,
		trigger.WithRecorder(st),
		trigger.WithLogger(logger),
	)

	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		store:      st,
		resolver:   resolver,
		badge:      badge,
		tray:       tray,
		presenter:  presenter,
		dispatcher: dispatcher,
		ntfy:       !ntfyDisabled,
		lockPath:   cfg.LockPath(),
		lock:       flock.New(cfg.LockPath()),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and starts the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another whispersend daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel

	now := time.Now()
	d.startedAt.Store(&now)
	d.running.Store(true)
	d.logger.Info("whispersend daemon started",
		slog.String("address", d.api.address()),
		slog.String("lock", d.lockPath),
	)
	return nil
}

// Stop shuts down the API, drops pending clears, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.presenter.Scheduler().Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("whispersend daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Address returns the bound API address once started.
func (d *Daemon) Address() string {
	return d.api.address()
}

// Dispatch runs one trigger through the pipeline. Only the submission timeout
// cancels it; a caller disconnecting does not.
func (d *Daemon) Dispatch(ctx context.Context, src trigger.Source) trigger.Result {
	return d.dispatcher.Dispatch(context.WithoutCancel(ctx), src)
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Address:      d.api.address(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		BaseURL:      d.resolver.ResolveBaseURL(ctx),
		NtfyEnabled:  d.ntfy,
		PendingTasks: d.presenter.Scheduler().Pending(),
	}
	if started := d.startedAt.Load(); started != nil {
		status.StartedAt = *started
	}
	return status
}
