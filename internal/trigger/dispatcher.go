package trigger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"whispersend/internal/feedback"
	"whispersend/internal/logging"
	"whispersend/internal/store"
	"whispersend/internal/submit"
	"whispersend/internal/youtube"
)

// Submitter sends one validated URL.
type Submitter interface {
	Submit(ctx context.Context, rawURL string) submit.Outcome
}

// Presenter shows one outcome.
type Presenter interface {
	Present(ctx context.Context, outcome submit.Outcome) feedback.Signal
}

// Recorder persists dispatch history.
type Recorder interface {
	RecordSubmission(ctx context.Context, sub store.Submission) error
}

// Result describes one completed dispatch.
type Result struct {
	ID       string          `json:"id"`
	Trigger  Kind            `json:"trigger"`
	URL      string          `json:"url"`
	Outcome  submit.Outcome  `json:"-"`
	Signal   feedback.Signal `json:"signal"`
	Duration time.Duration   `json:"duration"`
}

// Dispatcher runs triggers through validation, submission, and feedback.
type Dispatcher struct {
	submitter Submitter
	presenter Presenter
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder stores every dispatch.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logging.NewComponentLogger(logger, "trigger")
	}
}

// NewDispatcher wires the pipeline.
func NewDispatcher(submitter Submitter, presenter Presenter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		submitter: submitter,
		presenter: presenter,
		logger:    logging.NewComponentLogger(nil, "trigger"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one trigger and presents exactly one signal. Invalid URLs
// never reach the submitter.
func (d *Dispatcher) Dispatch(ctx context.Context, src Source) Result {
	id := uuid.NewString()
	kind := src.Kind()
	candidate := src.CandidateURL()

	ctx = logging.WithRequestID(ctx, id)
	ctx = logging.WithTrigger(ctx, string(kind))
	logger := logging.WithContext(ctx, d.logger)

	started := d.now()
	var outcome submit.Outcome
	if youtube.IsAcceptable(candidate) {
		logger.Info("submitting video", slog.String("url", candidate))
		outcome = d.submitter.Submit(ctx, candidate)
	} else {
		logger.Info("candidate url rejected", slog.String("url", candidate))
		outcome = submit.Rejected(submit.MsgInvalidURL)
	}
	signal := d.presenter.Present(ctx, outcome)
	elapsed := d.now().Sub(started)

	attrs := []any{
		slog.String("outcome", string(outcome.Kind)),
		slog.String("message", signal.Message),
		slog.Duration("elapsed", elapsed),
	}
	if outcome.OK() || errors.Is(outcome.Err, submit.ErrInvalidInput) {
		logger.Info("dispatch finished", attrs...)
	} else {
		logger.Warn("dispatch finished", append(attrs, logging.Error(outcome.Err))...)
	}

	if d.recorder != nil {
		sub := store.Submission{
			ID:         id,
			URL:        candidate,
			Trigger:    string(kind),
			Kind:       string(outcome.Kind),
			Message:    signal.Message,
			HTTPStatus: outcome.Status,
			Duration:   elapsed,
			CreatedAt:  started,
		}
		if err := d.recorder.RecordSubmission(context.WithoutCancel(ctx), sub); err != nil {
			logger.Warn("record submission failed", logging.Error(err))
		}
	}

	return Result{
		ID:       id,
		Trigger:  kind,
		URL:      candidate,
		Outcome:  outcome,
		Signal:   signal,
		Duration: elapsed,
	}
}
