package assist

import (
	"errors"
	"net/http"

	"github.com/loomworks/tasklight/internal/anthropic"
)

// ValidationError means the caller's input was unusable. The caller fixes
// the input; nothing is retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// UpstreamError means the completion service was unreachable, rate-limited,
// or returned content we could not use. RateLimited distinguishes the
// "try again later" case for user-facing messaging.
type UpstreamError struct {
	Reason      string
	RateLimited bool
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return "upstream: " + e.Reason + ": " + e.Err.Error()
	}
	return "upstream: " + e.Reason
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstreamFailure(reason string, err error) *UpstreamError {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &UpstreamError{Reason: reason, RateLimited: true, Err: err}
	}
	return &UpstreamError{Reason: reason, Err: err}
}
