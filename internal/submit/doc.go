// Package submit sends one YouTube URL to the summarization service and
// classifies what happened.
//
// Submitter.Submit issues exactly one POST to {base}/tasks under a fixed
// 10-second deadline and always returns an Outcome: Success on 201, Failed
// with the service's detail on any other status, Failed("Request failed.") on
// transport errors, and TimedOut when the deadline fires first. Non-success
// outcomes carry a sentinel error (ErrInvalidInput, ErrNetwork, ErrTimeout,
// ErrServiceRejected) for errors.Is classification. Response bodies that are
// not JSON objects are treated as empty; the status code still decides.
package submit
