package submit

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNetwork         = errors.New("network failure")
	ErrTimeout         = errors.New("timeout")
	ErrServiceRejected = errors.New("service rejected")
)

// User-facing messages.
const (
	MsgInvalidURL    = "Invalid YouTube URL."
	MsgTaskQueued    = "Task queued."
	MsgRequestFailed = "Request failed."
	MsgTimedOut      = "Request timed out."
)

// Kind tags an Outcome variant.
type Kind string

const (
	KindSuccess  Kind = "success"
	KindRejected Kind = "rejected"
	KindFailed   Kind = "failed"
	KindTimedOut Kind = "timed_out"
)

// Outcome is the classified result of one submission attempt.
type Outcome struct {
	Kind    Kind
	Message string
	// Status is the HTTP status when a response arrived, otherwise zero.
	Status int
	// Err is nil for success and wraps one of the package sentinels otherwise.
	Err error
}

// Success reports an accepted task.
func Success(message string) Outcome {
	return Outcome{Kind: KindSuccess, Message: message, Status: 201}
}

// Rejected reports input refused before any request was made.
func Rejected(reason string) Outcome {
	return Outcome{Kind: KindRejected, Message: reason, Err: fmt.Errorf("%w: %s", ErrInvalidInput, reason)}
}

// Failed reports a service or transport failure. cause must wrap ErrNetwork
// or ErrServiceRejected.
func Failed(detail string, status int, cause error) Outcome {
	return Outcome{Kind: KindFailed, Message: detail, Status: status, Err: cause}
}

// TimedOut reports that the client-side deadline elapsed.
func TimedOut() Outcome {
	return Outcome{Kind: KindTimedOut, Message: MsgTimedOut, Err: ErrTimeout}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess
}

func (o Outcome) String() string {
	if o.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", o.Kind, o.Status, o.Message)
	}
	return fmt.Sprintf("%s: %s", o.Kind, o.Message)
}
